// Command care manages the caregiver health-tracking app's accounts and
// sessions from the terminal: signup, login, logout, profile edits, the
// route-guard permission check and the login audit log.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eldercare/internal/config"
	"eldercare/internal/derive"
	"eldercare/internal/errs"
	"eldercare/internal/model"
	"eldercare/internal/service"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "care",
	Short:         "Caregiver health-tracking companion",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and local storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, err := config.DefaultDataDir()
		if err != nil {
			return err
		}
		path := configPath
		if path == "" {
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}

		cfg := config.NewConfig(dataDir)
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		if err := config.Init(path, cfg); err != nil {
			return err
		}

		fmt.Printf("Configuration initialized at %s\n", path)
		fmt.Printf("Storage: %s (%s)\n", cfg.Storage.Type, cfg.Storage.Path)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register the elder's profile and generate login credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		elderName, _ := cmd.Flags().GetString("elder-name")
		birthDate, _ := cmd.Flags().GetString("birth-date")
		caregiver, _ := cmd.Flags().GetString("caregiver")
		sex, _ := cmd.Flags().GetString("sex")

		if elderName == "" || birthDate == "" {
			return fmt.Errorf("%w: --elder-name and --birth-date are required", errs.ErrEmptyProfile)
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		creds, err := app.auth.CreateUser(cmd.Context(), model.Profile{
			ElderName:     elderName,
			BirthDate:     birthDate,
			CaregiverName: caregiver,
			Sex:           sex,
		})
		if err != nil {
			return err
		}

		fmt.Println("Account ready. Generated credentials:")
		fmt.Printf("  username: %s\n", creds.Username)
		fmt.Printf("  password: %s\n", creds.Password)
		return nil
	},
}

// previewCmd mirrors the live credential preview the signup form shows while
// it is being filled in.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the credentials a name and birth date would generate",
	RunE: func(cmd *cobra.Command, args []string) error {
		elderName, _ := cmd.Flags().GetString("elder-name")
		birthDate, _ := cmd.Flags().GetString("birth-date")

		fmt.Printf("  username: %s\n", derive.Username(elderName))
		fmt.Printf("  password: %s\n", derive.Password(birthDate))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate and start a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = promptPassword(); err != nil {
				return err
			}
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.auth.Authenticate(cmd.Context(), args[0], password)
		if errors.Is(err, errs.ErrInvalidCredentials) {
			return fmt.Errorf("invalid username or password")
		}
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", sess.Username, sess.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.sessions.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.sessions.Current(cmd.Context())
		if err != nil {
			return err
		}
		if sess == nil {
			return fmt.Errorf("not logged in")
		}

		fmt.Printf("Username:    %s\n", sess.Username)
		fmt.Printf("Role:        %s\n", sess.Role)
		fmt.Printf("Login time:  %s\n", sess.LoginAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Println("Permissions:")
		for _, p := range sess.Permissions {
			fmt.Printf("  %s\n", p)
		}
		return nil
	},
}

// accessCmd is the route guard as a command: exit code 0 when the current
// session grants the tag, 1 otherwise.
var accessCmd = &cobra.Command{
	Use:   "access <permission-tag>",
	Short: "Check whether the current session grants a permission tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := model.ParsePermission(args[0])
		if err != nil {
			return err
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		sess, err := app.sessions.Current(cmd.Context())
		if err != nil {
			return err
		}
		if !service.HasPermission(sess, tag) {
			return fmt.Errorf("access denied: %s", tag)
		}
		fmt.Printf("access granted: %s\n", tag)
		return nil
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List recent login attempts, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		events, err := app.users.LoginEvents(cmd.Context())
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No login attempts recorded")
			return nil
		}
		for _, ev := range events {
			fmt.Printf("%s  %-7s  %s\n",
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Status, ev.Username)
		}
		return nil
	},
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := app.profiles.Get(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Elder name:  %s\n", p.ElderName)
	fmt.Printf("Birth date:  %s\n", p.BirthDate)
	fmt.Printf("Caregiver:   %s\n", p.CaregiverName)
	fmt.Printf("Sex:         %s\n", p.Sex)
	return nil
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the elder's identity profile",
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the elder's identity profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields (propagates name/birth date to elder info)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		p, err := app.profiles.Get(cmd.Context())
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("elder-name"); v != "" {
			p.ElderName = v
		}
		if v, _ := cmd.Flags().GetString("birth-date"); v != "" {
			p.BirthDate = v
		}
		if v, _ := cmd.Flags().GetString("caregiver"); v != "" {
			p.CaregiverName = v
		}
		if v, _ := cmd.Flags().GetString("sex"); v != "" {
			p.Sex = v
		}

		if err := app.profiles.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Println("Profile saved")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	for _, c := range []*cobra.Command{signupCmd, previewCmd, profileSetCmd} {
		c.Flags().String("elder-name", "", "elder's full name")
		c.Flags().String("birth-date", "", "elder's birth date (YYYY-MM-DD)")
	}
	for _, c := range []*cobra.Command{signupCmd, profileSetCmd} {
		c.Flags().String("caregiver", "", "caregiver's name")
		c.Flags().String("sex", "", "elder's sex")
	}
	loginCmd.Flags().String("password", "", "password (prompted when omitted)")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(initCmd, signupCmd, previewCmd, loginCmd, logoutCmd,
		whoamiCmd, accessCmd, auditCmd, profileCmd)
}
