package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/cookbook/internal/launcher"
	"evalgo.org/cookbook/internal/logging"
)

var mongodCmd = &cobra.Command{
	Use:   "mongod",
	Short: "Run a local mongod and stream its output",
	Long: `Start mongod as a child process and forward its stdout and stderr to the
log line by line. Ctrl-C (or SIGTERM) stops the child; the command exits
with the child's status.

With --client a mongo shell is started once mongod accepts connections; it
receives --client-input on stdin and its output is logged the same way.

Examples:
  cookbook mongod --port 27019 --dbpath ./data/db
  cookbook mongod --client mongosh --client-input 'use admin'`,
	RunE: runMongod,
}

var (
	mongodPort   int
	mongodDBPath string
	mongodBinary string

	mongoClient      string
	mongoClientInput string
	mongoClientWait  time.Duration
)

func init() {
	mongodCmd.Flags().IntVar(&mongodPort, "port", 27019, "port for mongod to listen on")
	mongodCmd.Flags().StringVar(&mongodDBPath, "dbpath", "./data/db", "data directory")
	mongodCmd.Flags().StringVar(&mongodBinary, "binary", "mongod", "mongod executable")
	mongodCmd.Flags().StringVar(&mongoClient, "client", "", "mongo shell to start against mongod (e.g. mongosh)")
	mongodCmd.Flags().StringVar(&mongoClientInput, "client-input", "use admin", "commands written to the shell's stdin")
	mongodCmd.Flags().DurationVar(&mongoClientWait, "client-wait", 30*time.Second, "how long to wait for mongod before starting the shell")
}

func runMongod(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(mongodDBPath, 0755); err != nil {
		return fmt.Errorf("failed to create dbpath: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc, err := launcher.Start(launcher.Spec{
		Name:   "mongod",
		Binary: mongodBinary,
		Args:   launcher.MongodArgs(mongodPort, mongodDBPath),
	}, logging.L)
	if err != nil {
		return err
	}

	var client *launcher.Process
	if mongoClient != "" {
		client, err = startMongoClient(ctx, proc)
		if err != nil {
			logging.Warnf("Mongo shell not started: %v", err)
		}
	}

	select {
	case <-ctx.Done():
		logging.Infof("Shutdown signal received")
		err = proc.Stop()
	case <-proc.Done():
		err = proc.Wait()
	}
	if client != nil {
		_ = client.Stop()
	}

	if code := launcher.ExitCode(err); code != 0 {
		return fmt.Errorf("mongod exited with status %d", code)
	}
	return nil
}

// startMongoClient waits for mongod to listen and starts the shell.
func startMongoClient(ctx context.Context, mongod *launcher.Process) (*launcher.Process, error) {
	waitCtx, cancel := context.WithTimeout(ctx, mongoClientWait)
	defer cancel()
	go func() {
		select {
		case <-mongod.Done():
			cancel()
		case <-waitCtx.Done():
		}
	}()

	if err := launcher.WaitForPort(waitCtx, "127.0.0.1:"+strconv.Itoa(mongodPort)); err != nil {
		return nil, err
	}

	input := mongoClientInput
	if input != "" {
		input += "\n"
	}
	return launcher.Start(launcher.Spec{
		Name:   "mongo",
		Binary: mongoClient,
		Args:   launcher.MongoClientArgs(mongodPort),
		Stdin:  input,
	}, logging.L)
}
