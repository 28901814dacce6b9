package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nookcoder/library-console/internal/router"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a console screen by path, e.g. /books/3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.show(cmd.Context(), args[0])
	},
}

var booksCmd = &cobra.Command{
	Use:   "books [id]",
	Short: "List the catalog or show one book",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.show(cmd.Context(), joinPath(append([]string{"books"}, args...)...))
	},
}

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List loans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.show(cmd.Context(), "/loans")
	},
}

var usersCmd = &cobra.Command{
	Use:   "users [id]",
	Short: "List members or show one member's loans (ADMIN)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return app.show(cmd.Context(), joinPath("users", args[0], "loans"))
		}
		return app.show(cmd.Context(), "/users")
	},
}

func init() {
	rootCmd.AddCommand(openCmd, booksCmd, loansCmd, usersCmd)
}

func joinPath(parts ...string) string {
	return "/" + strings.Join(parts, "/")
}

// show navigates to path and renders whichever screen the guards let
// through.
func (c *console) show(ctx context.Context, path string) error {
	nav, err := c.router.Navigate(path)
	if err != nil {
		return err
	}
	if nav.Redirected() && len(nav.Denials) > 0 {
		fmt.Fprintf(c.out, "%s is not available, showing %s\n", nav.Requested, nav.Path)
	}
	return c.render(ctx, nav)
}

func (c *console) render(ctx context.Context, nav *router.Navigation) error {
	switch nav.Route.Name {
	case router.Login:
		fmt.Fprintln(c.out, "Not signed in. Run 'libctl login --email <email>'.")
		return nil
	case router.Register:
		fmt.Fprintln(c.out, "Create an account with 'libctl register'.")
		return nil
	case router.Dashboard:
		return c.printStatus()
	}

	var (
		body []byte
		err  error
	)
	switch nav.Route.Name {
	case router.Books:
		body, err = c.catalog.Books(ctx)
	case router.BookDetail:
		body, err = c.catalog.Book(ctx, nav.Params["id"])
	case router.Loans:
		body, err = c.catalog.Loans(ctx)
	case router.Users:
		body, err = c.catalog.Users(ctx)
	case router.UserLoans:
		body, err = c.catalog.UserLoans(ctx, nav.Params["id"])
	default:
		return fmt.Errorf("no screen for route %q", nav.Route.Name)
	}
	if err != nil {
		return err
	}
	c.printJSON(body)
	return nil
}

func (c *console) printJSON(body []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err == nil {
		fmt.Fprintln(c.out, pretty.String())
	} else {
		fmt.Fprintln(c.out, string(body))
	}
}
