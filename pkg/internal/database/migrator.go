package database

import (
	"github.com/loreweave/loreweave/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Profile{},
	&models.Post{},
	&models.Collection{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(
		append(
			AutoMaintainRange,
			&models.ProfileEditor{},
			&models.PostAuthor{},
			&models.PostEditor{},
			&models.CollectionPost{},
			&models.CollectionEditor{},
		)...,
	); err != nil {
		return err
	}

	return nil
}
