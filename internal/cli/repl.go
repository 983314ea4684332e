package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errUsage = errors.New("usage")

// execIface is the command surface the REPL dispatches to. App implements it;
// tests use a recording stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Archive(ctx context.Context, args []string, archived bool) error
	Tags(ctx context.Context, args []string) error
	AddTag(ctx context.Context, args []string) error
	DeleteTag(ctx context.Context, args []string) error
	TagPass(ctx context.Context, args []string) error
	UntagPass(ctx context.Context, args []string) error
	Groups(ctx context.Context, args []string) error
	AddGroup(ctx context.Context, args []string) error
	DeleteGroup(ctx context.Context, args []string) error
	GroupPass(ctx context.Context, args []string) error
	UngroupPass(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Move(ctx context.Context, args []string) error
	Barcode(ctx context.Context, args []string) error
	Updatable(ctx context.Context, args []string) error
	Watch(ctx context.Context, args []string) error
}

var usage = map[string]string{
	"list":      "list [archived] [type=<PassType>] [tag=<id>]",
	"show":      "show <pass>",
	"import":    "import <file.json>",
	"delete":    "delete <pass>",
	"archive":   "archive <pass>",
	"unarchive": "unarchive <pass>",
	"tags":      "tags",
	"addtag":    "addtag <name> [#rrggbb]",
	"deltag":    "deltag <tag>",
	"tag":       "tag <pass> <tag>",
	"untag":     "untag <pass> <tag>",
	"groups":    "groups",
	"addgroup":  "addgroup <name> [description...]",
	"delgroup":  "delgroup <group>",
	"group":     "group <pass> <group>",
	"ungroup":   "ungroup <pass>",
	"sort":      "sort [option]",
	"move":      "move <pass> <onto pass>",
	"barcode":   "barcode <pass> <out.png> [width height] [invert] | barcode all <dir> [width height]",
	"updatable": "updatable",
	"watch":     "watch [seconds]",
}

var commandOrder = []string{
	"list", "show", "import", "delete", "archive", "unarchive",
	"tags", "addtag", "deltag", "tag", "untag",
	"groups", "addgroup", "delgroup", "group", "ungroup",
	"sort", "move", "barcode", "updatable", "watch",
}

// runREPL reads one command per line and dispatches it to a. Handler errors
// are printed and the loop goes on; it returns on EOF, "exit"/"quit" or
// cancellation of ctx.
func runREPL(ctx context.Context, a execIface, prompt func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(out, prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		if cmd == "l" {
			cmd = "list"
		}

		var err error
		switch cmd {
		case "help":
			printHelp(out)
		case "list":
			err = a.List(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "import":
			err = a.Import(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "archive":
			err = a.Archive(ctx, args, true)
		case "unarchive":
			err = a.Archive(ctx, args, false)
		case "tags":
			err = a.Tags(ctx, args)
		case "addtag":
			err = a.AddTag(ctx, args)
		case "deltag":
			err = a.DeleteTag(ctx, args)
		case "tag":
			err = a.TagPass(ctx, args)
		case "untag":
			err = a.UntagPass(ctx, args)
		case "groups":
			err = a.Groups(ctx, args)
		case "addgroup":
			err = a.AddGroup(ctx, args)
		case "delgroup":
			err = a.DeleteGroup(ctx, args)
		case "group":
			err = a.GroupPass(ctx, args)
		case "ungroup":
			err = a.UngroupPass(ctx, args)
		case "sort":
			err = a.Sort(ctx, args)
		case "move":
			err = a.Move(ctx, args)
		case "barcode":
			err = a.Barcode(ctx, args)
		case "updatable":
			err = a.Updatable(ctx, args)
		case "watch":
			err = a.Watch(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
			continue
		}

		switch {
		case errors.Is(err, errUsage):
			fmt.Fprintln(out, "Usage:", usage[cmd])
		case err != nil:
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Available commands:")
	for _, c := range commandOrder {
		fmt.Fprintln(out, "  "+usage[c])
	}
	fmt.Fprintln(out, "  exit")
}
