package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tonimelisma/storefront-go/internal/storefront"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// stdinIsTerminal is a test seam.
var stdinIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with email and password. The password is read without echo
when stdin is a terminal, otherwise as the first line of stdin.`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "account email (prompted when omitted)")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE:  runRegister,
	}

	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "account email (prompted when omitted)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and remove stored credentials",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for a new session",
		Args:  cobra.NoArgs,
		RunE:  runRefresh,
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Display the signed-in user",
		Args:  cobra.NoArgs,
		RunE:  runWhoami,
	}
}

// prompter reads interactive input from the command's stdin.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
}

// line prints label and reads one trimmed line.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}

	return strings.TrimSpace(s), nil
}

// password reads a password without echo from a terminal, or as a plain
// line when input is piped.
func (p *prompter) password() (string, error) {
	if !stdinIsTerminal() {
		s, err := p.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && s != "") {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return strings.TrimRight(s, "\r\n"), nil
	}

	fmt.Fprint(p.out, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)

	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return string(pw), nil
}

// flagOrPrompt returns the named flag, prompting when it is empty.
func flagOrPrompt(cmd *cobra.Command, p *prompter, flag, label string) (string, error) {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", err
	}

	if v != "" {
		return v, nil
	}

	v, err = p.line(label)
	if err != nil {
		return "", err
	}

	if v == "" {
		return "", fmt.Errorf("%s is required", strings.ToLower(label))
	}

	return v, nil
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	p := newPrompter(cmd)

	email, err := flagOrPrompt(cmd, p, "email", "Email")
	if err != nil {
		return err
	}

	password, err := p.password()
	if err != nil {
		return err
	}

	session, err := cc.Service.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	cc.Statusf("Logged in as %s.\n", session.User.Email)

	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	p := newPrompter(cmd)

	name, err := flagOrPrompt(cmd, p, "name", "Name")
	if err != nil {
		return err
	}

	email, err := flagOrPrompt(cmd, p, "email", "Email")
	if err != nil {
		return err
	}

	password, err := p.password()
	if err != nil {
		return err
	}

	session, err := cc.Service.Register(cmd.Context(), storefront.RegisterInput{
		Name: name, Email: email, Password: password,
	})
	if err != nil {
		return err
	}

	cc.Statusf("Account created. Logged in as %s.\n", session.User.Email)

	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	if err := cc.Service.Logout(cmd.Context()); err != nil {
		cc.Statusf("Warning: server logout failed (%v); local session cleared.\n", err)

		return nil
	}

	cc.Statusf("Logged out.\n")

	return nil
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	if _, err := cc.Service.Refresh(cmd.Context()); err != nil {
		return err
	}

	cc.Statusf("Session refreshed.\n")

	return nil
}

// whoamiOutput is the JSON schema for `whoami --json`.
type whoamiOutput struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	user, err := cc.Service.Me(cmd.Context())
	if err != nil {
		return err
	}

	out := whoamiOutput{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}

	if claims, err := storefront.ParseClaims(cc.Service.Client().Token()); err == nil && !claims.ExpiresAt.IsZero() {
		out.ExpiresAt = &claims.ExpiresAt
	}

	w := cmd.OutOrStdout()

	if cc.JSONOutput() {
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "User:    %s <%s>\n", out.Name, out.Email)
	fmt.Fprintf(w, "ID:      %s\n", out.ID)
	fmt.Fprintf(w, "Role:    %s\n", out.Role)

	if out.ExpiresAt != nil {
		fmt.Fprintf(w, "Expires: %s\n", formatTime(*out.ExpiresAt))
	}

	return nil
}
