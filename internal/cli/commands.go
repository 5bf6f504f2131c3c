package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/seminarhub/userdb/internal/flagx"
	"github.com/seminarhub/userdb/internal/tokens"
	"github.com/seminarhub/userdb/internal/users"
)

func (a *App) addUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	username := fs.String("user", "", "username (required)")
	fullName := fs.String("name", "", "full name (required)")
	approver := fs.String("approver", "", "approving account (required)")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when omitted)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-user", "-name", "-approver", "-email", "-password"})); err != nil {
		return err
	}

	pwd := *password
	if pwd == "" {
		var err error
		if pwd, err = promptNewPassword(a.out); err != nil {
			return err
		}
	}

	rec, err := a.manager.Users().Create(ctx, users.NewUserParams{
		Username: *username,
		Password: pwd,
		FullName: *fullName,
		Approver: *approver,
		Email:    *email,
	})
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Fprintln(a.out, "user database is read-only, nothing created")
		return nil
	}

	fmt.Fprintf(a.out, "created user %s (ics key %s)\n", rec.Username, rec.ICSKey)
	return nil
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	username := fs.String("user", "", "username (required)")
	password := fs.String("password", "", "new password (prompted when omitted)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-user", "-password"})); err != nil {
		return err
	}

	pwd := *password
	if pwd == "" {
		var err error
		if pwd, err = promptNewPassword(a.out); err != nil {
			return err
		}
	}

	changed, err := a.manager.Users().ChangePassword(ctx, *username, pwd)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(a.out, "user database is read-only, password unchanged")
		return nil
	}

	fmt.Fprintf(a.out, "password for %s changed\n", *username)
	return nil
}

func (a *App) listUsers(ctx context.Context) error {
	summaries, err := a.manager.Users().ListSummary(ctx)
	if err != nil {
		return err
	}
	for _, s := range summaries {
		fmt.Fprintf(a.out, "%s\t%s\n", s.Username, s.DisplayName)
	}
	return nil
}

func (a *App) issueTokens(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	count := fs.Int("count", 1, "number of tokens to issue")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-count"})); err != nil {
		return err
	}
	if *count < 1 {
		return fmt.Errorf("count must be positive, got %d", *count)
	}

	ids := make([]string, *count)
	for i := range ids {
		ids[i] = tokens.NewID()
	}

	if err := a.manager.Tokens().Issue(ctx, ids); err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(a.out, id)
	}
	return nil
}

func (a *App) revokeToken(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	id := fs.String("id", "", "token id (required)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-id"})); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing -id")
	}

	return a.manager.Tokens().Revoke(ctx, *id)
}

func (a *App) purgeTokens(ctx context.Context) error {
	removed, err := a.manager.Tokens().PurgeExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "removed %d expired tokens\n", removed)
	return nil
}
