package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/exhibition-curator/internal/collection"
	"github.com/pdiddy/exhibition-curator/internal/session"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Interactive session: search, page through results, build collections",
	Long: `Curate reads one command per line from stdin. Collections exist only
for the lifetime of the session.

` + curateHelp,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := collection.NewStore(appConfig.Collections, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		sess := newSession(appConfig.Search)
		return runCurate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sess, store)
	},
}

const curateHelp = `Commands:
  search <query>     search every source
  sort <mode>        title, newest, or oldest
  next | prev        move between result pages
  page <n>           jump to page n
  add <n>            add result #n to the active collection
  remove <id>        remove every item with id from the active collection
  new <name>         create a collection and make it active
  use <name>         make an existing collection active
  collections        list collections (* marks the active one)
  show               list the active collection
  export [name]      print a collection as YAML
  help               show this text
  quit               leave`

func init() {
	rootCmd.AddCommand(curateCmd)
}

// runCurate executes commands from in until EOF or quit.
func runCurate(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session, store *collection.Store) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintf(out, "Active collection: %s. Type help for commands.\n", store.Active())
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		verb, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(verb) {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, curateHelp)
		case "search":
			if arg == "" {
				fmt.Fprintln(out, "usage: search <query>")
				continue
			}
			snap, _ := sess.Search(ctx, arg)
			if snap.Error != "" {
				fmt.Fprintln(out, snap.Error)
				continue
			}
			renderPage(out, snap.Page, snap.FailedSources)
		case "sort":
			mode, err := types.ParseSortMode(arg)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			snap := sess.SetSort(mode)
			fmt.Fprintf(out, "Sorting by %s.\n", mode)
			if snap.Page.Total > 0 {
				renderPage(out, snap.Page, snap.FailedSources)
			}
		case "next":
			renderPage(out, sess.NextPage(), nil)
		case "prev":
			renderPage(out, sess.PrevPage(), nil)
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintln(out, "usage: page <n>")
				continue
			}
			renderPage(out, sess.GoTo(n), nil)
		case "add":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintln(out, "usage: add <n>")
				continue
			}
			it, ok := sess.Item(n - 1)
			if !ok {
				fmt.Fprintf(out, "no result #%d\n", n)
				continue
			}
			if err := store.Add(it); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %q (%s) to %s.\n", it.Title, it.ID, store.Active())
		case "remove":
			if arg == "" {
				fmt.Fprintln(out, "usage: remove <id>")
				continue
			}
			n, err := store.Remove(arg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed %d item(s) from %s.\n", n, store.Active())
		case "new":
			created, err := store.Create(arg)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if created {
				fmt.Fprintf(out, "Created collection %s; it is now active.\n", strings.TrimSpace(arg))
			} else {
				fmt.Fprintf(out, "Collection %s already exists.\n", strings.TrimSpace(arg))
			}
		case "use":
			if err := store.SetActive(arg); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "Active collection: %s.\n", arg)
		case "collections":
			names, err := store.Names()
			if err != nil {
				return err
			}
			active := store.Active()
			for _, name := range names {
				marker := " "
				if name == active {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, name)
			}
		case "show":
			items, err := store.ActiveItems()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Collection %s (%d items)\n", store.Active(), len(items))
			for _, it := range items {
				fmt.Fprintf(out, "  %-20s  %s, %s\n", it.ID, it.Title, it.Artist)
			}
		case "export":
			name := arg
			if name == "" {
				name = store.Active()
			}
			if err := store.Export(name, out); err != nil {
				if collection.IsNotFound(err) {
					fmt.Fprintln(out, err)
					continue
				}
				return err
			}
		default:
			fmt.Fprintf(out, "unknown command %q; type help\n", verb)
		}
	}
}
