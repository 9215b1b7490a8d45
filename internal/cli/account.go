package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lu-zhengda/accountctl/internal/app"
	"github.com/lu-zhengda/accountctl/internal/domain"
	"github.com/lu-zhengda/accountctl/internal/session"
)

func newLoginCmd() *cobra.Command {
	var (
		identifier    string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an email address or phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())

			var err error
			if identifier == "" {
				identifier, err = GetSimpleText(reader, "Email or phone number", cmd.ErrOrStderr())
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read identifier: %w", err)
				}
			}

			var password string
			if passwordStdin {
				password, err = ReadSecretLine(reader)
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read password: %w", err)
				}
			} else {
				password, err = GetPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			sess, err := e.svc.SignIn(ctx, identifier, password)
			if err != nil {
				return errors.New(app.SignInNotice(err))
			}
			if sess.Profile == nil {
				if p, err := e.svc.RefreshProfile(ctx, sess.Token); err == nil {
					sess.SetProfile(p)
				}
			}

			if jsonFlag {
				return fprintJSON(out, jsonStatus{LoggedIn: true, Profile: toJSONProfile(sess.Profile)})
			}
			fmt.Fprintln(out, app.NoticeSignedIn)
			if sess.Profile != nil {
				printProfile(out, sess.Profile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&identifier, "identifier", "", "email address or phone number")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the profile of the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			sess := e.svc.Restore(ctx)
			if !sess.Authenticated() {
				return errors.New(app.NoticeLoginRequired)
			}

			cached := false
			profile, err := e.svc.RefreshProfile(ctx, sess.Token)
			if err != nil {
				if sess.Profile == nil {
					return errors.New(app.NoticeGenericError)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: could not refresh profile, showing saved copy")
				profile, cached = sess.Profile, true
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				p := toJSONProfile(profile)
				p.Cached = cached
				return fprintJSON(out, p)
			}
			printProfile(out, profile)
			return nil
		},
	}
}

func newDeleteAccountCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Permanently delete the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			if !yes {
				reader := bufio.NewReader(cmd.InOrStdin())
				ok, err := Confirm(reader, "Delete your account? This cannot be undone.", cmd.ErrOrStderr())
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				if !ok {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			ctx := cmd.Context()
			sess := e.svc.Restore(ctx)
			if !sess.Authenticated() {
				return errors.New(app.NoticeLoginRequired)
			}

			if err := e.svc.DeleteAccount(ctx, sess.Token); err != nil {
				return errors.New(app.DeleteNotice(err))
			}

			if jsonFlag {
				return fprintJSON(out, jsonAction{OK: true, Action: "delete-account"})
			}
			fmt.Fprintln(out, app.NoticeAccountDeleted)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved session without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			sess := e.svc.Restore(cmd.Context())
			exp, hasExp := session.TokenExpiry(sess.Token)

			out := cmd.OutOrStdout()
			if jsonFlag {
				status := jsonStatus{
					LoggedIn: sess.Authenticated(),
					Profile:  toJSONProfile(sess.Profile),
				}
				if hasExp {
					status.TokenExpiresAt = exp.UTC().Format(time.RFC3339)
				}
				return fprintJSON(out, status)
			}
			if !sess.Authenticated() {
				fmt.Fprintln(out, "Not logged in.")
				return nil
			}
			fmt.Fprintln(out, "Logged in.")
			if hasExp {
				fmt.Fprintf(out, "Token expires %s\n", exp.Local().Format(time.RFC1123))
			}
			if sess.Profile != nil {
				printProfile(out, sess.Profile)
			}
			return nil
		},
	}
}

func printProfile(w io.Writer, p *domain.Profile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	if c := p.Contact(); c != "" {
		fmt.Fprintf(tw, "Contact:\t%s\n", c)
	}
	if a := p.Avatar(); a != "" {
		fmt.Fprintf(tw, "Avatar:\t%s\n", a)
	} else if i := p.Initial(); i != "" {
		fmt.Fprintf(tw, "Avatar:\t%s\n", i)
	}
	tw.Flush()
}
