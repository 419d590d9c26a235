package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/lumenarts/gallery-api/pkg/db/models"
	"github.com/lumenarts/gallery-api/pkg/enums"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
)

// Service reads and replaces the singleton settings documents.
type Service interface {
	GetMedia(ctx context.Context) (MediaSettings, error)
	UpdateMedia(ctx context.Context, media MediaSettings) (MediaSettings, error)
	PublicMedia(ctx context.Context) (map[string]string, error)
	GetContact(ctx context.Context) (ContactSettings, error)
	UpdateContact(ctx context.Context, contact ContactSettings) (ContactSettings, error)
}

type settingStore interface {
	GetOrSeed(ctx context.Context, key enums.SettingKey, defaults datatypes.JSON) (*models.Setting, error)
	Upsert(ctx context.Context, key enums.SettingKey, value datatypes.JSON) (*models.Setting, error)
}

type service struct {
	repo settingStore
}

func NewService(repo settingStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetMedia(ctx context.Context) (MediaSettings, error) {
	media := DefaultMediaSettings()
	if err := s.load(ctx, enums.SettingKeyMedia, &media); err != nil {
		return MediaSettings{}, err
	}
	return media, nil
}

// UpdateMedia replaces the whole media document.
func (s *service) UpdateMedia(ctx context.Context, media MediaSettings) (MediaSettings, error) {
	for _, p := range media.platforms() {
		p.link.URL = strings.TrimSpace(p.link.URL)
	}
	if err := s.store(ctx, enums.SettingKeyMedia, media); err != nil {
		return MediaSettings{}, err
	}
	return media, nil
}

func (s *service) PublicMedia(ctx context.Context) (map[string]string, error) {
	media, err := s.GetMedia(ctx)
	if err != nil {
		return nil, err
	}
	return media.Public(), nil
}

func (s *service) GetContact(ctx context.Context) (ContactSettings, error) {
	contact := DefaultContactSettings()
	if err := s.load(ctx, enums.SettingKeyContact, &contact); err != nil {
		return ContactSettings{}, err
	}
	return contact, nil
}

// UpdateContact replaces the whole contact document.
func (s *service) UpdateContact(ctx context.Context, contact ContactSettings) (ContactSettings, error) {
	contact = ContactSettings{
		Email:       strings.TrimSpace(contact.Email),
		Phone:       strings.TrimSpace(contact.Phone),
		Location:    strings.TrimSpace(contact.Location),
		Hours:       strings.TrimSpace(contact.Hours),
		MapEmbedURL: strings.TrimSpace(contact.MapEmbedURL),
	}
	if err := s.store(ctx, enums.SettingKeyContact, contact); err != nil {
		return ContactSettings{}, err
	}
	return contact, nil
}

// load decodes the stored value for key into dst. dst must already hold the
// defaults: they seed a missing row and fill fields absent from older rows.
func (s *service) load(ctx context.Context, key enums.SettingKey, dst any) error {
	defaults, err := json.Marshal(dst)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode default settings")
	}
	setting, err := s.repo.GetOrSeed(ctx, key, datatypes.JSON(defaults))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load "+key.String()+" settings")
	}
	if err := json.Unmarshal(setting.Value, dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode "+key.String()+" settings")
	}
	return nil
}

func (s *service) store(ctx context.Context, key enums.SettingKey, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode settings")
	}
	if _, err := s.repo.Upsert(ctx, key, datatypes.JSON(raw)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save "+key.String()+" settings")
	}
	return nil
}
