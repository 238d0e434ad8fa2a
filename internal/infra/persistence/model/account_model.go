// Package model contains the GORM persistence models.
package model

import (
	"time"

	"gatekeeper/internal/domain/entity"
)

// AccountModel mirrors the 'accounts' table. The integer primary key is
// assigned by the database on insert.
type AccountModel struct {
	ID                int64      `gorm:"primaryKey;autoIncrement"`
	Name              string     `gorm:"type:varchar(100);not null"`
	Email             string     `gorm:"type:varchar(255);unique;not null"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"`
	Role              string     `gorm:"type:varchar(20);not null;default:user"`
	ThemePreference   string     `gorm:"type:varchar(20);not null;default:system"`
	ResetToken        *string    `gorm:"type:varchar(255);index"`
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model back to a pure domain entity.
func (m *AccountModel) ToDomain() *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:                m.ID,
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              entity.Role(m.Role),
		ThemePreference:   entity.ThemePreference(m.ThemePreference),
		ResetToken:        m.ResetToken,
		ResetTokenExpires: m.ResetTokenExpires,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain converts a domain Account to its persistence model.
// CreatedAt must round-trip: Update persists via Save, which writes every
// column, so dropping it here would clobber the row's creation time.
func FromDomain(account *entity.Account) *AccountModel {
	if account == nil {
		return nil
	}

	return &AccountModel{
		ID:                account.ID,
		Name:              account.Name,
		Email:             account.Email,
		PasswordHash:      account.PasswordHash,
		Role:              account.Role.String(),
		ThemePreference:   account.ThemePreference.String(),
		ResetToken:        account.ResetToken,
		ResetTokenExpires: account.ResetTokenExpires,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}
