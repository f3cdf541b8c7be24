package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/flownote/internal/auth"
	"github.com/existflow/flownote/internal/store"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the local account",
	Long:  `Create the local account or check its password.`,
}

var signUpCmd = &cobra.Command{
	Use:     "signup",
	Aliases: []string{"register"},
	Short:   "Create the local account",
	RunE:    runSignUp,
}

var signInCmd = &cobra.Command{
	Use:     "signin",
	Aliases: []string{"login"},
	Short:   "Check the account password",
	RunE:    runSignIn,
}

var (
	authName  string
	authEmail string
)

func init() {
	signUpCmd.Flags().StringVar(&authName, "name", "", "Display name")
	signUpCmd.Flags().StringVar(&authEmail, "email", "", "Email")
	signInCmd.Flags().StringVar(&authEmail, "email", "", "Email")

	authCmd.AddCommand(signUpCmd)
	authCmd.AddCommand(signInCmd)
}

// prompter reads answers from the command's input. Passwords are read
// without echo when input is a terminal.
type prompter struct {
	out    io.Writer
	in     io.Reader
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{out: cmd.OutOrStdout(), in: in, reader: bufio.NewReader(in)}
}

func (p *prompter) line(label, preset string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	fmt.Fprint(p.out, label)
	s, err := p.reader.ReadString('\n')
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *prompter) password(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && f == os.Stdin && term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return p.line(label, "")
}

func runSignUp(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd)
	name, err := p.line("Name: ", authName)
	if err != nil {
		return err
	}
	email, err := p.line("Email: ", authEmail)
	if err != nil {
		return err
	}
	password, err := p.password("Password: ")
	if err != nil {
		return err
	}
	confirm, err := p.password("Confirm Password: ")
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		gw := auth.NewLocal(st, 0)
		profile, err := gw.SignUp(ctx, auth.SignUpRequest{
			Name:     name,
			Email:    email,
			Password: password,
			Confirm:  confirm,
		})
		if err != nil {
			return err
		}
		printf(cmd, "✓ Account created for %s\n", profile.Email)
		return nil
	})
}

func runSignIn(cmd *cobra.Command, args []string) error {
	p := newPrompter(cmd)
	email, err := p.line("Email: ", authEmail)
	if err != nil {
		return err
	}
	password, err := p.password("Password: ")
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		profile, err := auth.NewLocal(st, 0).SignIn(ctx, email, password)
		if err != nil {
			return err
		}
		printf(cmd, "✓ Signed in as %s\n", profile.Name)
		return nil
	})
}
