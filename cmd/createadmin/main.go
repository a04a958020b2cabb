// Command createadmin seeds an administrator account. Administrators cannot
// be registered through the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/config"
	"github.com/iliyamo/course-enrollment/internal/database"
	"github.com/iliyamo/course-enrollment/internal/i18n"
	"github.com/iliyamo/course-enrollment/internal/lib/slogcustom"
	"github.com/iliyamo/course-enrollment/internal/model"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	login := pflag.String("login", "", "administrator login")
	password := pflag.String("password", "", "administrator password")
	fullName := pflag.String("full-name", "Администратор", "display name")
	email := pflag.String("email", "", "contact email")
	phone := pflag.String("phone", "", "contact phone, 8(XXX)XXX-XX-XX")
	pflag.Parse()

	log := slog.New(slogcustom.NewCustomHandler(os.Stderr, slog.LevelInfo))

	if err := godotenv.Load(*envFile); err != nil {
		log.Warn("env file not loaded, using process environment", "file", *envFile)
	}

	reg := utils.Registration{
		Login:    *login,
		Password: *password,
		FullName: *fullName,
		Phone:    *phone,
		Email:    *email,
	}.Normalize()
	if err := reg.Validate(); err != nil {
		log.Error("invalid administrator", "err", describe(err))
		os.Exit(2)
	}

	id, err := create(log, reg)
	if err != nil {
		log.Error("create administrator", "err", describe(err))
		os.Exit(1)
	}
	fmt.Printf("administrator %q created with id %d\n", reg.Login, id)
}

func create(log *slog.Logger, reg utils.Registration) (uint64, error) {
	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		return 0, err
	}

	users := repository.NewUserRepo(db)
	exists, err := users.LoginExists(ctx, reg.Login)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperr.Validation("register.login_taken")
	}

	hash, err := utils.HashPassword(reg.Password, cfg.BcryptCost)
	if err != nil {
		return 0, err
	}
	id, err := users.Create(ctx, model.User{
		Login:        reg.Login,
		PasswordHash: hash,
		FullName:     reg.FullName,
		Phone:        reg.Phone,
		Email:        reg.Email,
		IsAdmin:      true,
	})
	if errors.Is(err, repository.ErrLoginExists) {
		return 0, apperr.Validation("register.login_taken")
	}
	if err == nil {
		log.Info("administrator stored", "id", id, "driver", cfg.DBDriver)
	}
	return id, err
}

// describe renders validation failures as readable text.
func describe(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindValidation {
		return i18n.T(i18n.Default(), ae.Key, ae.Args...)
	}
	return err.Error()
}
