package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/coursemanager/internal/common"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// PreferencesService keeps the UI theme. It defaults to dark.
type PreferencesService interface {
	Init(ctx context.Context) error
	Theme() string
	ToggleTheme() string
}

type preferencesService struct {
	store SettingStore
	queue Submitter

	mu    sync.RWMutex
	theme string
}

func NewPreferencesService(store SettingStore, queue Submitter) PreferencesService {
	return &preferencesService{store: store, queue: queue, theme: ThemeDark}
}

func (p *preferencesService) Init(ctx context.Context) error {
	var theme string
	found, err := p.store.Setting(ctx, common.SettingTheme, &theme)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if found && (theme == ThemeDark || theme == ThemeLight) {
		p.theme = theme
	}
	return nil
}

func (p *preferencesService) Theme() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// ToggleTheme flips between light and dark and returns the new theme.
func (p *preferencesService) ToggleTheme() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.theme == ThemeLight {
		p.theme = ThemeDark
	} else {
		p.theme = ThemeLight
	}

	theme := p.theme
	p.queue.Submit(func(ctx context.Context) error {
		return p.store.SetSetting(ctx, common.SettingTheme, theme)
	})
	return theme
}
