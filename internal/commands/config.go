package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runShowConfig,
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	RunE:  runInitConfig,
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	shown := *cfg
	// never echo secrets
	if shown.Security.JWTSecret != "" {
		shown.Security.JWTSecret = "********"
	}
	if shown.Security.BootstrapAdminPassword != "" {
		shown.Security.BootstrapAdminPassword = "********"
	}
	if shown.Redis.Password != "" {
		shown.Redis.Password = "********"
	}

	data, err := yaml.Marshal(shown)
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# Cookbook Configuration

server:
  host: 0.0.0.0
  port: 8000
  read_timeout: 30s
  write_timeout: 30s
  shutdown_timeout: 10s
  debug: false

mongo:
  uri: mongodb://localhost:27017
  database: cookbook
  timeout: 10s
  max_pool_size: 50

sql:
  driver: sqlite
  dsn: file:cookbook.db?_pragma=busy_timeout(5000)

tasks:
  # mongo or sql (shares the sql database above)
  backend: mongo

redis:
  addr: ""
  channel: cookbook:events

uploads:
  dir: uploads
  base_url: http://localhost:8000
  max_size: 10485760

plot:
  width: 6.4
  height: 4.8
  samples: 100

logging:
  level: info
  format: text
  output: stderr
  # rotation, used when output is a file path
  max_size: 100
  max_backups: 3
  max_age: 28

security:
  rate_limit: 100
  allowed_origins:
    - "*"
  auth_enabled: true
  jwt_secret: change-me-in-production
  jwt_expiration: 30m
  bootstrap_admin_username: admin
  bootstrap_admin_password: ""
`

func runInitConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat("config.yaml"); err == nil {
		return fmt.Errorf("config.yaml already exists")
	}

	if err := os.WriteFile("config.yaml", []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Println("Created config.yaml")
	return nil
}
