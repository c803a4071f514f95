package main

import (
	"context"
	"fmt"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/database"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/internal/module/user"
	"facility-work-tracker/internal/store"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(config.Get())
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("迁移失败: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrated", len(database.Models), "tables")
		return nil
	},
}

var newUser struct {
	email    string
	name     string
	password string
	role     string
}

var roles = map[string]int{
	"employee": model.UserRoleEmployee,
	"manager":  model.UserRoleManager,
	"admin":    model.UserRoleAdmin,
}

// createUserCmd 系统不开放注册，账号只能由运维创建
var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a login account",
	RunE: func(cmd *cobra.Command, args []string) error {
		roleID, ok := roles[newUser.role]
		if !ok {
			return fmt.Errorf("unknown role %q (employee, manager, admin)", newUser.role)
		}
		db, err := database.Open(config.Get())
		if err != nil {
			return err
		}
		stores := store.NewGormStores(db)
		u, err := user.Create(context.Background(), stores.Users, newUser.email, newUser.name, newUser.password, roleID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", u.Email, newUser.role, u.ID)
		return nil
	},
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.email, "email", "", "login email")
	f.StringVar(&newUser.name, "name", "", "display name")
	f.StringVar(&newUser.password, "password", "", "at least 8 characters with letters and digits")
	f.StringVar(&newUser.role, "role", "employee", "employee, manager or admin")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
