package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"topodaily/pkg/auth"
	"topodaily/pkg/db"
	gormstore "topodaily/pkg/server/store/gorm"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username> <new-password>",
	Short: "Reset a user's password",
	Long: `Reset the password of an existing user account.

Example:
  topoctl user reset-password alice n3w-s3cret`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, password := args[0], args[1]

		if err := resetPassword(username, password); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", username, err)
			os.Exit(1)
		}
		fmt.Printf("Password updated for %s\n", username)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}

func resetPassword(username, password string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return gormstore.NewUsersStore(database).UpdatePassword(username, hash)
}
