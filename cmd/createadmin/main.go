// createadmin 建立管理員帳號，或把既有帳號升級為管理員
//
//	DATABASE_URL=postgres://... createadmin -email admin@example.com [-name Administrador] [-password ...]
//
// 沒有給 -password 時會從終端機讀取 (不回顯)
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/config"
	"task-manager/internal/database"
	"task-manager/internal/model"
	"task-manager/internal/service"
	"task-manager/internal/store"

	"golang.org/x/term"
)

var (
	newPgxPool                = database.NewPgxPool
	runMigrationsFn           = database.RunMigrations
	getUserCredentialsByEmail = store.GetUserCredentialsByEmail
	updateUserRole            = store.UpdateUserRole
	createUser                = store.CreateUser
	isTerminal                = term.IsTerminal
	readPassword              = term.ReadPassword
	exitFunc                  = os.Exit
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		exitFunc(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	email := fs.String("email", "", "管理員 email (必填)")
	name := fs.String("name", "Administrador", "顯示名稱")
	password := fs.String("password", "", "密碼，未提供時從終端機讀取")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if strings.TrimSpace(*email) == "" {
		fs.Usage()
		return errors.New("-email is required")
	}

	db, err := newPgxPool(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	// 已存在的帳號只調整角色，不動密碼
	existing, err := getUserCredentialsByEmail(ctx, db, strings.ToLower(strings.TrimSpace(*email)))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			fmt.Fprintf(stdout, "%s is already an admin\n", existing.Email)
			return nil
		}
		if _, err := updateUserRole(ctx, db, existing.ID, model.RoleAdmin); err != nil {
			return fmt.Errorf("promote %s: %w", existing.Email, err)
		}
		fmt.Fprintf(stdout, "promoted %s to admin\n", existing.Email)
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("lookup %s: %w", *email, err)
	}

	if *password == "" {
		if *password, err = promptPassword(stdin, stdout); err != nil {
			return err
		}
	}

	req := api.RegisterRequest{Name: *name, Email: *email, Password: *password}
	req.Normalize()
	if err := api.NewValidator().Validate(&req); err != nil {
		return describe(apperror.FromValidation(err))
	}

	cost, err := config.BcryptCost()
	if err != nil {
		return err
	}
	hash, err := service.NewHasher(cost, nil).Hash(ctx, req.Password)
	if err != nil {
		return err
	}
	user, err := createUser(ctx, db, &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create %s: %w", req.Email, err)
	}
	fmt.Fprintf(stdout, "created admin %s (%s)\n", user.Email, user.ID)
	return nil
}

// promptPassword 終端機時不回顯；否則讀一行 (例如從 pipe)
func promptPassword(stdin io.Reader, stdout io.Writer) (string, error) {
	fmt.Fprint(stdout, "Password: ")
	if f, ok := stdin.(*os.File); ok && isTerminal(int(f.Fd())) {
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(stdout)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func describe(e *apperror.Error) error {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	if len(msgs) == 0 {
		return errors.New(e.Message)
	}
	return errors.New(strings.Join(msgs, "; "))
}
