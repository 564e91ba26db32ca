package store

import (
	"context"
	"fmt"

	"task-manager/internal/database"
	"task-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// 不含 password_hash 的欄位，對外查詢一律使用
const userColumns = `id, name, email, role, created_at, updated_at`

// 僅供憑證驗證使用
const userColumnsWithSecret = `id, name, email, role, created_at, updated_at, password_hash`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func scanUserWithSecret(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.PasswordHash,
	)
}

// CreateUser 新增使用者，PasswordHash 必須已經是雜湊值
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, translate("CreateUser", err)
	}
	return u, nil
}

// GetUserByID 取得使用者 (不含密碼雜湊)
func GetUserByID(ctx context.Context, db database.DB, userID uuid.UUID) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, translate("GetUserByID", err)
	}
	return u, nil
}

// GetUserCredentialsByEmail 以 email 取得使用者並包含密碼雜湊
func GetUserCredentialsByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumnsWithSecret+` FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUserWithSecret(row, u); err != nil {
		return nil, translate("GetUserCredentialsByEmail", err)
	}
	return u, nil
}

// GetUserCredentialsByID 以 id 取得使用者並包含密碼雜湊
func GetUserCredentialsByID(ctx context.Context, db database.DB, userID uuid.UUID) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumnsWithSecret+` FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUserWithSecret(row, u); err != nil {
		return nil, translate("GetUserCredentialsByID", err)
	}
	return u, nil
}

// ListUsers 依建立時間新到舊列出所有使用者
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, translate("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, translate("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListUsers", err)
	}
	return users, nil
}

// UpdateUserProfile 更新姓名與 email，nil 表示不變；不會碰 password_hash
func UpdateUserProfile(ctx context.Context, db database.DB, userID uuid.UUID, name, email *string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET
		     name = COALESCE($2, name),
		     email = COALESCE($3, email),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
		name,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, translate("UpdateUserProfile", err)
	}
	return u, nil
}

// UpdateUserPassword 只更新密碼雜湊
func UpdateUserPassword(ctx context.Context, db database.DB, userID uuid.UUID, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $2, updated_at = now()
		 WHERE id = $1`,
		userID,
		passwordHash,
	)
	if err != nil {
		return translate("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUserPassword: %w", ErrNotFound)
	}
	return nil
}

// UpdateUserRole 變更角色並回傳更新後的使用者
func UpdateUserRole(ctx context.Context, db database.DB, userID uuid.UUID, role model.Role) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID,
		role,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, translate("UpdateUserRole", err)
	}
	return u, nil
}

// DeleteUserCascade 在同一個 statement 中刪除使用者與其所有任務，回傳刪除的任務數
func DeleteUserCascade(ctx context.Context, db database.DB, userID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx,
		`WITH removed_tasks AS (
		     DELETE FROM tasks WHERE owner_id = $1 RETURNING id
		 ), removed_user AS (
		     DELETE FROM users WHERE id = $1 RETURNING id
		 )
		 SELECT (SELECT count(*) FROM removed_user), (SELECT count(*) FROM removed_tasks)`,
		userID,
	)
	var users, tasks int64
	if err := row.Scan(&users, &tasks); err != nil {
		return 0, translate("DeleteUserCascade", err)
	}
	if users == 0 {
		return 0, fmt.Errorf("DeleteUserCascade: %w", ErrNotFound)
	}
	return tasks, nil
}
