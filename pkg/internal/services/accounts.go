package services

import (
	"context"
	"fmt"

	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/loreweave/loreweave/pkg/internal/models"
	"github.com/loreweave/loreweave/pkg/internal/security"
	"github.com/loreweave/loreweave/pkg/internal/session"
)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account: %v", err)
	}
	return account, nil
}

func GetAccountByName(name string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err != nil {
		return account, fmt.Errorf("unable to get account: %v", err)
	}
	return account, nil
}

func NewAccount(name, nick, email, password string) (models.Account, error) {
	var account models.Account

	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return account, fmt.Errorf("unable to count existing accounts: %v", err)
	}
	if count > 0 {
		return account, ErrNameTaken
	}
	if err := database.C.Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return account, fmt.Errorf("unable to count existing accounts: %v", err)
	}
	if count > 0 {
		return account, ErrEmailTaken
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return account, err
	}

	account = models.Account{
		Name:     name,
		Nick:     nick,
		Email:    email,
		Password: hashed,
	}
	if len(account.Nick) == 0 {
		account.Nick = name
	}

	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}
	return account, nil
}

// LoginAccount matches the identifier against name or email, verifies the
// password, and records the access token for single-session checks when the
// session store is enabled.
func LoginAccount(ctx context.Context, identifier, password string) (models.Account, security.TokenPair, error) {
	var account models.Account
	var pair security.TokenPair

	if err := database.C.
		Where("name = ? OR email = ?", identifier, identifier).
		First(&account).Error; err != nil {
		return account, pair, ErrBadCredentials
	}

	if !security.VerifyPassword(password, account.Password) {
		return account, pair, ErrBadCredentials
	}

	pair, err := security.IssuePair(account.ID)
	if err != nil {
		return account, pair, err
	}

	if err := session.RecordToken(ctx, account.ID, pair.AccessToken); err != nil {
		return account, pair, err
	}

	return account, pair, nil
}

func LogoutAccount(ctx context.Context, account models.Account) error {
	return session.DropToken(ctx, account.ID)
}

func RefreshToken(ctx context.Context, refreshToken string) (security.TokenPair, error) {
	pair, err := security.RefreshPair(refreshToken)
	if err != nil {
		return pair, err
	}

	claims, err := security.ParseAccess(pair.AccessToken)
	if err != nil {
		return pair, err
	}

	if err := session.RecordToken(ctx, claims.AccountID, pair.AccessToken); err != nil {
		return pair, err
	}
	return pair, nil
}
