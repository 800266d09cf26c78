package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hvacops/internal/domain"
	"hvacops/internal/repository"
)

var (
	userEmail    string
	userName     string
	userPhone    string
	userRole     string
	userPassword string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Provision staff accounts",
	}

	userCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an owner or technician account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				u, err := createUser(cmd.Context(), repository.NewUserRepository(db, cfg.DBTimeout), newUserInput{
					Email:    userEmail,
					Name:     userName,
					Phone:    userPhone,
					Role:     userRole,
					Password: userPassword,
				}, bcrypt.DefaultCost)
				if err != nil {
					return err
				}
				slog.Info("user created", "id", u.ID, "email", u.Email, "role", u.Role)
				return nil
			})
		},
	}

	userPasswordCmd = &cobra.Command{
		Use:   "set-password",
		Short: "Replace a user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB) error {
				repo := repository.NewUserRepository(db, cfg.DBTimeout)
				if err := setPassword(cmd.Context(), repo, userEmail, userPassword, bcrypt.DefaultCost); err != nil {
					return err
				}
				slog.Info("password updated", "email", userEmail)
				return nil
			})
		},
	}
)

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "login email (required)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "display name (required)")
	userCreateCmd.Flags().StringVar(&userPhone, "phone", "", "phone number")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(domain.RoleTechnician), "OWNER or TECHNICIAN")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "initial password (required)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("password")

	userPasswordCmd.Flags().StringVar(&userEmail, "email", "", "login email (required)")
	userPasswordCmd.Flags().StringVar(&userPassword, "password", "", "new password (required)")
	_ = userPasswordCmd.MarkFlagRequired("email")
	_ = userPasswordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd, userPasswordCmd)
	rootCmd.AddCommand(userCmd)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type newUserInput struct {
	Email, Name, Phone, Role, Password string
}

func createUser(ctx context.Context, users userStore, in newUserInput, cost int) (*domain.User, error) {
	role, ok := domain.ParseRole(in.Role)
	if !ok || (role != domain.RoleOwner && role != domain.RoleTechnician) {
		return nil, fmt.Errorf("role must be OWNER or TECHNICIAN, got %q", in.Role)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func setPassword(ctx context.Context, users userStore, email, password string, cost int) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	return users.UpdatePasswordHash(ctx, u.ID, string(hash))
}
