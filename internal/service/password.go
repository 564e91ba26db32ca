// File: internal/service/password.go
package service

import (
	"context"
	"fmt"

	"task-manager/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// Hasher 以 bcrypt 產生與比對密碼雜湊；pool 不為 nil 時在 worker pool 上執行
type Hasher struct {
	cost int
	pool worker.Pool
}

// NewHasher cost 超出 bcrypt 範圍時使用 bcrypt.DefaultCost
func NewHasher(cost int, pool worker.Pool) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost, pool: pool}
}

// Cost 回傳實際使用的成本參數
func (h *Hasher) Cost() int { return h.cost }

// Hash 接收明文密碼，回傳 bcrypt 哈希字串
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	var (
		hash []byte
		err  error
	)
	if runErr := h.run(ctx, func() {
		hash, err = bcryptGenerateFromPassword([]byte(password), h.cost)
	}); runErr != nil {
		return "", fmt.Errorf("Hash: %w", runErr)
	}
	if err != nil {
		return "", fmt.Errorf("Hash: %w", err)
	}
	return string(hash), nil
}

// Compare 比對明文密碼與 bcrypt 哈希；不符合或雜湊損毀都回傳 false
func (h *Hasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	var err error
	if runErr := h.run(ctx, func() {
		err = bcryptCompareHashAndPassword([]byte(hash), []byte(password))
	}); runErr != nil {
		return false, fmt.Errorf("Compare: %w", runErr)
	}
	return err == nil, nil
}

// run 在 pool 上執行 fn 並等待結束
func (h *Hasher) run(ctx context.Context, fn func()) error {
	if h.pool == nil {
		fn()
		return nil
	}
	done := make(chan struct{})
	if err := h.pool.Submit(ctx, func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	<-done
	return nil
}
