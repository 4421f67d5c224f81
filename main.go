package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/simtrack/simtrack/config"
	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/logger"
	"github.com/simtrack/simtrack/util/random"
	"github.com/simtrack/simtrack/web"
	"github.com/simtrack/simtrack/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogger()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			_ = server.Stop()
			_ = database.CloseDB()
			logger.CloseLogger()
			return
		}
	}
}

// seedDatabase creates the schema and ensures the default admin account
// exists.
func seedDatabase() {
	initLogger()
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println("seed failed:", err)
		return
	}
	fmt.Println("database ready, admin login:", config.GetAdminEmail())
}

// resetAdminPassword sets a new password for the admin account. With no
// password given, a random one is generated and printed.
func resetAdminPassword(password string) {
	initLogger()
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println("reset failed:", err)
		return
	}

	if password == "" {
		password = random.Seq(12)
	}

	userService := service.UserService{}
	if err := userService.ResetPassword(config.GetAdminEmail(), password); err != nil {
		fmt.Println("reset admin password failed:", err)
		return
	}
	fmt.Println("admin password reset")
	fmt.Println("email:", config.GetAdminEmail())
	fmt.Println("password:", password)
}

func showSettings() {
	fmt.Println("current panel settings as follows:")
	fmt.Println("admin email:", config.GetAdminEmail())
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("db path:", config.GetDBPath())
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "simtrack simulation tracking panel",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and the default admin account",
		Run: func(cmd *cobra.Command, args []string) {
			seedDatabase()
		},
	}

	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin account",
	}

	var newPassword string
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the admin password",
		Run: func(cmd *cobra.Command, args []string) {
			resetAdminPassword(newPassword)
		},
	}
	resetCmd.Flags().StringVar(&newPassword, "password", "", "new password (generated when omitted)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the panel settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSettings()
		},
	}

	adminCmd.AddCommand(resetCmd, showCmd)
	rootCmd.AddCommand(seedCmd, adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
