package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"task-api/internal/client"
	"task-api/internal/models"
)

const defaultURL = "http://localhost:8080"

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) {
		printHelp(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("taskctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	url := global.String("url", envOr("TASKS_API_URL", defaultURL), "task-api base URL")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() < 1 {
		return errUsage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*url)
	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "list":
		return handleListCommand(ctx, c, out)
	case "get":
		return handleGetCommand(ctx, c, rest, out)
	case "add":
		return handleAddCommand(ctx, c, rest, out)
	case "update":
		return handleUpdateCommand(ctx, c, rest, out)
	case "delete":
		return handleDeleteCommand(ctx, c, rest, out)
	case "export":
		return handleExportCommand(ctx, c, rest, out)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		return errUsage
	}
}

func handleListCommand(ctx context.Context, c *client.Client, out io.Writer) error {
	tasks, err := c.List(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found")
		return nil
	}
	for _, task := range tasks {
		printTask(out, task)
	}
	return nil
}

func handleGetCommand(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	getCmd := flag.NewFlagSet("get", flag.ContinueOnError)
	id := getCmd.Int("id", 0, "Task ID")
	if err := getCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("--id is required")
	}

	task, err := c.Get(ctx, *id)
	if err != nil {
		return err
	}
	printTask(out, task)
	return nil
}

func handleAddCommand(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
	content := addCmd.String("content", "", "Task content")
	done := addCmd.Bool("done", false, "Mark task as done")
	if err := addCmd.Parse(args); err != nil {
		return err
	}
	if *content == "" {
		return errors.New("--content is required")
	}

	task, err := c.Create(ctx, models.TaskRequest{Content: *content, IsDone: *done})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Added task with ID %d\n", task.ID)
	return nil
}

func handleUpdateCommand(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	updateCmd := flag.NewFlagSet("update", flag.ContinueOnError)
	id := updateCmd.Int("id", 0, "Task ID to update")
	content := updateCmd.String("content", "", "New task content")
	done := updateCmd.Bool("done", false, "Mark task as done")
	if err := updateCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *content == "" {
		return errors.New("--id and --content are required")
	}

	task, err := c.Update(ctx, *id, models.TaskRequest{Content: *content, IsDone: *done})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Task %d updated\n", task.ID)
	return nil
}

func handleDeleteCommand(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	deleteCmd := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := deleteCmd.Int("id", 0, "Task ID to delete")
	if err := deleteCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("--id is required")
	}

	if err := c.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Task %d deleted\n", *id)
	return nil
}

func handleExportCommand(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	outFile := exportCmd.String("out", "", "Output file path (JSON)")
	if err := exportCmd.Parse(args); err != nil {
		return err
	}
	if *outFile == "" {
		return errors.New("--out is required")
	}

	tasks, err := c.List(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*outFile, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *outFile, err)
	}

	fmt.Fprintf(out, "%d tasks exported to %s\n", len(tasks), *outFile)
	return nil
}

func printTask(out io.Writer, task models.Task) {
	status := "Pending"
	if task.IsDone {
		status = "Done"
	}
	fmt.Fprintf(out, "%d: %s [%s]\n", task.ID, task.Content, status)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `Usage: taskctl [--url=URL] <command> [flags]

Commands:
  list                                   List tasks
  get     --id=ID                        Show one task
  add     --content="..." [--done]       Add new task
  update  --id=ID --content="..." [--done]  Replace task
  delete  --id=ID                        Delete task
  export  --out=FILE                     Export tasks to JSON

Server:
  URL is taken from --url or TASKS_API_URL (default http://localhost:8080).`)
}
