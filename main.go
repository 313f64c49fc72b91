package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/logger"
	"github.com/lumiere-fiap-soat-hackaton/fiap-lumiere-auth-lambda/monitoring"
)

// lambdaHandlerEnv - переменная, в которой среда Lambda передает имя обработчика
const lambdaHandlerEnv = "_HANDLER"

var (
	configFile string
	logLevel   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lumiere-auth: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lumiere-auth",
		Short: "Lumiere auth and storage functions",
		Long: `Lumiere auth serves the sign-up, sign-in, session and presigned storage URL functions.
Run them behind a local API Gateway with "serve", or start a single function in the Lambda runtime with "lambda".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// В среде Lambda бинарник запускается без аргументов
			if name := os.Getenv(lambdaHandlerEnv); name != "" {
				return runLambda(cmd.Context(), name)
			}
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error) (overrides config)")
	cmd.AddCommand(
		newServeCmd(),
		newLambdaCmd(),
		newConfigCmd(),
	)
	return cmd
}

// loadConfig загружает конфигурацию и настраивает логгер
func loadConfig() (*AppConfig, error) {
	config, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		if !isValidLogLevel(logLevel) {
			return nil, fmt.Errorf("invalid logging level: %s", logLevel)
		}
		config.Logging.Level = logLevel
		logger.Debug("Override: logging.level = %s", logLevel)
	}

	level := logger.ParseLogLevel(config.Logging.Level)
	logger.SetGlobalLevel(level)
	logger.SetEnvironment(config.Logging.Environment)
	logger.Debug("Log level: %s, environment: %s", level.String(), config.Logging.Environment)

	return config, nil
}

func newServeCmd() *cobra.Command {
	var (
		listenAddr     string
		tlsCert        string
		tlsKey         string
		readTimeout    time.Duration
		writeTimeout   time.Duration
		metricsAddr    string
		disableMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve all functions behind a local API Gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			applyServeOverrides(cmd, config, listenAddr, tlsCert, tlsKey, readTimeout, writeTimeout, metricsAddr, disableMetrics)
			if err := config.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runServe(cmd.Context(), config)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&tlsCert, "tls-cert", "", "TLS certificate file (overrides config)")
	cmd.Flags().StringVar(&tlsKey, "tls-key", "", "TLS key file (overrides config)")
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "Read timeout (overrides config)")
	cmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "Write timeout (overrides config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-listen", "", "Metrics server listen address (overrides config)")
	cmd.Flags().BoolVar(&disableMetrics, "disable-metrics", false, "Disable metrics server (overrides config)")
	return cmd
}

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "lambda <function>",
		Short:     "Start one function in the AWS Lambda runtime",
		Long:      fmt.Sprintf("Start one function in the AWS Lambda runtime. Functions: %v", functionNames()),
		Args:      cobra.ExactArgs(1),
		ValidArgs: functionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLambda(cmd.Context(), args[0])
		},
	}
}

func newConfigCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML (secrets omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			return config.SaveConfig(output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file (- for stdout)")
	return cmd
}

// runLambda строит один обработчик и передает его среде Lambda.
// Ошибка конфигурации проявляется при холодном старте, а не в каждом запросе.
func runLambda(ctx context.Context, name string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	app := newApplication(config)
	handler, err := app.lambdaHandler(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to build function %s: %w", name, err)
	}

	logger.Info("Starting Lambda function %s", name)
	lambda.StartWithOptions(handler, lambda.WithContext(ctx))
	return nil
}

func runServe(ctx context.Context, config *AppConfig) error {
	logger.Info("Lumiere auth starting...")

	app := newApplication(config)
	gateway, err := app.newGateway(ctx)
	if err != nil {
		return fmt.Errorf("failed to create API Gateway: %w", err)
	}

	// Создаем и запускаем модуль мониторинга
	var monitor *monitoring.Monitor
	if config.Monitoring.Enabled {
		var checker monitoring.ReadinessChecker
		if app.storage != nil {
			checker = app.storage
		}

		monitor, err = monitoring.New(&config.Monitoring, checker)
		if err != nil {
			return fmt.Errorf("failed to create monitoring module: %w", err)
		}
		if err := monitor.Start(); err != nil {
			return fmt.Errorf("failed to start monitoring module: %w", err)
		}
		logger.Info("Monitoring enabled on %s", config.Monitoring.ListenAddress)
	} else {
		logger.Info("Monitoring disabled")
	}

	gatewayConfig := config.ToAPIGatewayConfig()
	logger.Info("Configuration:")
	logger.Info("  Listen Address: %s", gatewayConfig.ListenAddress)
	logger.Info("  Storage: %s (bucket: %s)", config.Storage.Provider, config.Storage.Bucket)
	logger.Info("  Identity region: %s", config.Identity.Region)
	logger.Info("  TLS Enabled: %t", gatewayConfig.TLSCertFile != "")

	// Запускаем API Gateway в отдельной горутине
	serverErr := make(chan error, 1)
	go func() {
		if err := gateway.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	logger.Info("Lumiere auth started successfully")

	// Ждем сигнал или ошибку сервера
	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal, shutting down...")
	case err := <-serverErr:
		if err != nil {
			logger.Error("API Gateway failed: %v", err)
			return err
		}
	}

	if monitor != nil {
		monitor.MarkShuttingDown()
	}

	// Создаем контекст с таймаутом для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := gateway.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping API Gateway: %v", err)
	}

	if monitor != nil {
		if err := monitor.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping monitoring: %v", err)
		}
	}

	logger.Info("Lumiere auth stopped")
	return nil
}

// applyServeOverrides применяет переопределения из командной строки
func applyServeOverrides(cmd *cobra.Command, config *AppConfig,
	listenAddr, tlsCert, tlsKey string,
	readTimeout, writeTimeout time.Duration,
	metricsAddr string, disableMetrics bool) {

	// Переопределения сервера
	if listenAddr != "" {
		config.Server.ListenAddress = listenAddr
		logger.Debug("Override: server.listen_address = %s", listenAddr)
	}

	if tlsCert != "" {
		config.Server.TLSCertFile = tlsCert
		logger.Debug("Override: server.tls_cert_file = %s", tlsCert)
	}

	if tlsKey != "" {
		config.Server.TLSKeyFile = tlsKey
		logger.Debug("Override: server.tls_key_file = %s", tlsKey)
	}

	if readTimeout > 0 {
		config.Server.ReadTimeout = readTimeout
		logger.Debug("Override: server.read_timeout = %v", readTimeout)
	}

	if writeTimeout > 0 {
		config.Server.WriteTimeout = writeTimeout
		logger.Debug("Override: server.write_timeout = %v", writeTimeout)
	}

	// Переопределения мониторинга
	if metricsAddr != "" {
		config.Monitoring.ListenAddress = metricsAddr
		logger.Debug("Override: monitoring.listen_address = %s", metricsAddr)
	}

	if cmd.Flags().Changed("disable-metrics") && disableMetrics {
		config.Monitoring.Enabled = false
		logger.Debug("Override: monitoring.enabled = false")
	}
}
