package cli

import (
	"errors"
	"fmt"

	"yamdb/internal/domain/users"
	"yamdb/internal/infra/tokens"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	adminUsername string
	adminEmail    string
)

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create or promote an administrator account",
	Long: `Create a superuser with the given username and email, or promote the existing account
that has both. Prints a confirmation code to exchange at /api/v1/auth/token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := users.ValidateUsername(adminUsername); err != nil {
			return err
		}
		if adminEmail == "" {
			return errors.New("--email is required")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		codes, err := tokens.Codes()
		if err != nil {
			return err
		}

		user, err := promoteAdmin(db, adminUsername, adminEmail)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin %q ready, confirmation code: %s\n", user.Username, codes.Make(user))
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Username of the administrator")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email of the administrator")
	_ = createAdminCmd.MarkFlagRequired("username")
}

// promoteAdmin makes the account identified by both username and email a superuser, creating it
// when neither is taken. A fresh state version invalidates older codes.
func promoteAdmin(db *gorm.DB, username, email string) (users.User, error) {
	var user users.User
	err := db.Transaction(func(tx *gorm.DB) error {
		var matches []users.User
		if err := tx.Where("username = ? OR email = ?", username, email).Limit(2).Find(&matches).Error; err != nil {
			return err
		}

		switch {
		case len(matches) == 0:
			user = users.User{
				Username:     username,
				Email:        email,
				Role:         users.RoleAdmin,
				IsSuperuser:  true,
				Status:       users.StatusPending,
				StateVersion: 1,
			}
			return tx.Create(&user).Error

		case len(matches) == 1 && matches[0].Username == username && matches[0].Email == email:
			user = matches[0]
			user.Role = users.RoleAdmin
			user.IsSuperuser = true
			user.StateVersion++
			return tx.Model(&user).Updates(map[string]any{
				"role":          user.Role,
				"is_superuser":  true,
				"state_version": user.StateVersion,
			}).Error

		default:
			return fmt.Errorf("username %q and email %q belong to different accounts", username, email)
		}
	})
	return user, err
}
