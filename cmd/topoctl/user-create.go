package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"topodaily/pkg/auth"
	"topodaily/pkg/db"
	"topodaily/pkg/model"
	gormstore "topodaily/pkg/server/store/gorm"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username> <password>",
	Short: "Create a user account",
	Long: `Create a user account directly in the database.

Example:
  topoctl user create alice s3cret
  topoctl user create boss s3cret --role administrateur`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, password := args[0], args[1]
		roleName, _ := cmd.Flags().GetString("role")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")

		role, err := model.RoleString(roleName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unknown role %q (topographe, administrateur)\n", roleName)
			os.Exit(1)
		}

		if err := createUser(username, password, email, phone, role); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", username, err)
			os.Exit(1)
		}
		fmt.Printf("Created %s %s\n", role, username)
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("role", "topographe", "account role")
	userCreateCmd.Flags().String("email", "", "email address")
	userCreateCmd.Flags().String("phone", "", "phone number")
}

func createUser(username, password, email, phone string, role model.Role) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return gormstore.NewUsersStore(database).CreateUser(&model.User{
		Username: username,
		Password: hash,
		Email:    email,
		Phone:    phone,
		Role:     role,
	})
}
