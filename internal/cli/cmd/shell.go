package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive console; type a path like /books or a command",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.shell(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `Commands:
  login <email> <password>   sign in
  logout                     sign out
  refresh                    renew the token
  status                     show the session
  open <path> | <path>       open a screen: /dashboard /books /books/<id> /loans /users /users/<id>/loans
  help                       this text
  exit                       leave the shell`

func (c *console) shell(ctx context.Context, in io.Reader) error {
	var signedIn atomic.Bool
	unsubscribe := c.session.Subscribe(func(authenticated bool) {
		signedIn.Store(authenticated)
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(in)
	for {
		if signedIn.Load() {
			fmt.Fprint(c.out, "libctl> ")
		} else {
			fmt.Fprint(c.out, "libctl (signed out)> ")
		}
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}
		if err := c.runLine(ctx, fields); err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
	}
}

func (c *console) runLine(ctx context.Context, fields []string) error {
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "help":
		fmt.Fprintln(c.out, shellHelp)
		return nil
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if _, err := c.session.Login(ctx, args[0], args[1]); err != nil {
			return err
		}
	case "logout":
		c.session.Logout()
	case "refresh":
		token, ok := c.session.Token()
		if !ok {
			return errNotLoggedIn
		}
		if _, err := c.session.Refresh(ctx, token); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Token refreshed.")
		return nil
	case "status":
		return c.printStatus()
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open <path>")
		}
		return c.show(ctx, args[0])
	default:
		if strings.HasPrefix(cmd, "/") {
			return c.show(ctx, cmd)
		}
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}

	// login and logout navigate; show where they landed
	if nav := c.router.Current(); nav != nil {
		return c.render(ctx, nav)
	}
	return nil
}
