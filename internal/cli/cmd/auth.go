package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nookcoder/library-console/internal/authapi"
	"github.com/spf13/cobra"
)

var loginFlags struct {
	email    string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session for later commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrPrompt(cmd, loginFlags.password)
		if err != nil {
			return err
		}
		if _, err := app.session.Login(cmd.Context(), loginFlags.email, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		return app.renderCurrent(cmd)
	},
}

var registerFlags struct {
	authapi.RegisterRequest
	membershipType string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a member account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := registerFlags.RegisterRequest
		req.MembershipType = authapi.MembershipType(strings.ToUpper(registerFlags.membershipType))
		if req.MembershipType != authapi.MembershipStandard && req.MembershipType != authapi.MembershipPremium {
			return fmt.Errorf("membership type must be STANDARD or PREMIUM, got %q", registerFlags.membershipType)
		}

		password, err := passwordOrPrompt(cmd, req.Password)
		if err != nil {
			return err
		}
		req.Password = password

		if _, err := app.session.Register(cmd.Context(), req); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		return app.renderCurrent(cmd)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the current token for a new one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, ok := app.session.Token()
		if !ok {
			return errNotLoggedIn
		}
		cred, err := app.session.Refresh(cmd.Context(), token)
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		fmt.Fprintf(app.out, "Token refreshed, expires %s\n", cred.ExpiresAt.Local().Format(time.RFC1123))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.session.Logout()
		fmt.Fprintln(app.out, "Signed out.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is signed in and with which roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.printStatus()
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginFlags.email, "email", "", "account e-mail")
	loginCmd.Flags().StringVar(&loginFlags.password, "password", "", "account password (prompted when empty)")
	_ = loginCmd.MarkFlagRequired("email")

	f := registerCmd.Flags()
	f.StringVar(&registerFlags.Email, "email", "", "account e-mail")
	f.StringVar(&registerFlags.Password, "password", "", "account password (prompted when empty)")
	f.StringVar(&registerFlags.FirstName, "first-name", "", "first name")
	f.StringVar(&registerFlags.LastName, "last-name", "", "last name")
	f.StringVar(&registerFlags.MembershipNumber, "membership-number", "", "library card number")
	f.StringVar(&registerFlags.membershipType, "membership-type", string(authapi.MembershipStandard), "STANDARD or PREMIUM")
	for _, name := range []string{"email", "first-name", "last-name", "membership-number"} {
		_ = registerCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(loginCmd, registerCmd, refreshCmd, logoutCmd, statusCmd)
}

func passwordOrPrompt(cmd *cobra.Command, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if env := os.Getenv("LIBCTL_PASSWORD"); env != "" {
		return env, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// renderCurrent shows the screen the session navigated to.
func (c *console) renderCurrent(cmd *cobra.Command) error {
	if nav := c.router.Current(); nav != nil {
		return c.render(cmd.Context(), nav)
	}
	return nil
}

func (c *console) printStatus() error {
	if !c.session.IsAuthenticated() {
		return errNotLoggedIn
	}

	fmt.Fprintln(c.out, "Signed in.")
	claims := c.session.Claims()
	if claims == nil {
		fmt.Fprintln(c.out, "  (token claims unreadable)")
		return nil
	}
	if claims.Subject != "" {
		fmt.Fprintf(c.out, "  account: %s\n", claims.Subject)
	}
	roles := c.session.Roles()
	if len(roles) == 0 {
		fmt.Fprintln(c.out, "  roles:   none")
	} else {
		fmt.Fprintf(c.out, "  roles:   %s\n", strings.Join(roles, ", "))
	}
	if claims.ExpiresAt != nil {
		fmt.Fprintf(c.out, "  expires: %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
