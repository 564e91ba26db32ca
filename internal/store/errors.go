package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// store 層對外只回傳以下幾種錯誤，呼叫端不需要認識 pgx 的錯誤碼
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ConflictError 唯一鍵衝突，Field 為衝突欄位
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

var constraintFields = map[string]string{
	"users_email_key": "email",
	"users_pkey":      "id",
	"tasks_pkey":      "id",
}

// PostgreSQL SQLSTATE
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeStringTooLong       = "22001"
	codeInvalidText         = "22P02"
)

// translate 把 driver 錯誤轉成 store 的封閉錯誤集合，並加上操作名稱
func translate(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			field, ok := constraintFields[pgErr.ConstraintName]
			if !ok {
				field = "value"
			}
			return fmt.Errorf("%s: %w", op, &ConflictError{Field: field})
		case codeCheckViolation, codeNotNullViolation, codeStringTooLong:
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		case codeInvalidText, codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
