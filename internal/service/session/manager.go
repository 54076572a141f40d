package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/uma-arai/sbcntr-restaurant-client/internal/model"
	"github.com/uma-arai/sbcntr-restaurant-client/internal/repository"
)

// ErrIncompleteSession はユーザーIDか認証トークンが欠けたセッションを確立しようとしたことを表します
var ErrIncompleteSession = errors.New("session requires both user id and auth token")

// Manager はプロセス全体で共有するセッションです
// 起動時に Init で端末ストレージから読み込み、各画面は Current で参照します
type Manager struct {
	mu      sync.RWMutex
	repo    repository.SessionRepository
	current model.Session
}

// NewManager は新しいManagerを作成します
func NewManager(repo repository.SessionRepository) *Manager {
	return &Manager{repo: repo}
}

// Init は端末ストレージからセッションを読み込みます
func (m *Manager) Init(ctx context.Context) error {
	s, err := m.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if !s.Authenticated() && (s.UserID != "" || s.AuthToken != "") {
		log.Println("Stored session is incomplete, treating as signed out")
	}
	return nil
}

// Current はセッションのスナップショットを返します
func (m *Manager) Current() model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Authenticated はユーザーIDと認証トークンが揃っているかを返します
func (m *Manager) Authenticated() bool {
	return m.Current().Authenticated()
}

// Token はAPIリクエストに付与するベアラートークンを返します
func (m *Manager) Token() string {
	s := m.Current()
	if !s.Authenticated() {
		return ""
	}
	return s.AuthToken
}

// Establish はログイン結果を保存し、現在のセッションとして設定します
func (m *Manager) Establish(ctx context.Context, s model.Session) error {
	if !s.Authenticated() {
		return ErrIncompleteSession
	}
	if err := m.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	return nil
}

// Clear はメモリ上のセッションを破棄してから端末ストレージを消去します
// ストレージの消去に失敗してもメモリ上は未認証のままです
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = model.Session{}
	m.mu.Unlock()

	if err := m.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	return nil
}
