// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/cache"
	"github.com/canonical/agency-service/internal/config"
	"github.com/canonical/agency-service/internal/db"
	"github.com/canonical/agency-service/internal/kratos"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/mail"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/monitoring/prometheus"
	"github.com/canonical/agency-service/internal/openfga"
	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/tracing"
	"github.com/canonical/agency-service/pkg/authentication"
	"github.com/canonical/agency-service/pkg/invitation"
	"github.com/canonical/agency-service/pkg/onboarding"
	"github.com/canonical/agency-service/pkg/status"
	"github.com/canonical/agency-service/pkg/tenant"
	"github.com/canonical/agency-service/pkg/web"
	"github.com/canonical/agency-service/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("agency-service", logger)
	tracingConfig := tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger)
	tracingConfig.SampleRatio = specs.TracingSampleRatio
	tracer := tracing.NewTracer(tracingConfig)

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	dependencies := map[string]status.PingerInterface{"database": dbClient}

	var subjects cache.SubjectCacheInterface = cache.NewNoopCache()
	if specs.SubjectCacheEnabled {
		subjectCache := cache.NewSubjectCache(
			cache.Config{
				Address:  specs.RedisAddress,
				Password: specs.RedisPassword,
				DB:       specs.RedisDB,
				TTL:      specs.SubjectCacheTTL,
			},
			tracer,
			monitor,
			logger,
		)
		defer subjectCache.Close()

		subjects = subjectCache
		dependencies["redis"] = subjectCache
		logger.Info("Subject cache is enabled")
	}

	authorizer := newAuthorizer(specs, tracer, monitor, logger)

	kratosClient := kratos.NewClient(
		specs.KratosAdminURL,
		subjects,
		tracer,
		monitor,
		logger,
	)

	var mailer invitation.MailerInterface = mail.NewNoopMailer(logger)
	if specs.MailEnabled {
		sesMailer, err := mail.NewSESMailer(context.Background(), specs.MailAWSRegion, specs.MailSender, tracer, monitor, logger)
		if err != nil {
			return fmt.Errorf("failed to create mailer: %v", err)
		}
		mailer = sesMailer
		logger.Info("Invitation mails are enabled")
	}

	var verifier authentication.TokenVerifierInterface
	if specs.AuthenticationEnabled {
		verifier, err = authentication.NewJWTAuthenticator(
			context.Background(),
			specs.OAuth2Issuer,
			specs.OAuth2JWKSURL,
			authentication.Policy{
				AllowedSubjects: specs.OAuth2AllowedSubjects,
				RequiredScope:   specs.OAuth2RequiredScope,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create authenticator: %v", err)
		}
		logger.Info("Authentication is enabled")
	}

	if specs.WebhookAPIKey == "" {
		logger.Warn("WEBHOOK_API_KEY is not set, identity hooks are not authenticated")
	}

	gate := authorization.NewGate(kratosClient, s, tracer, monitor, logger)

	tenantService := tenant.NewService(s, dbClient, kratosClient, authorizer, tracer, monitor, logger)
	invitationService := invitation.NewService(
		s,
		dbClient,
		kratosClient,
		authorizer,
		mailer,
		specs.InvitationLifetime,
		tracer,
		monitor,
		logger,
	)

	router := web.NewRouter(
		web.Config{
			PrimaryDomain:  specs.PrimaryDomain,
			LandingPath:    specs.LandingPath,
			SignInPath:     specs.SignInPath,
			AllowedOrigins: specs.AllowedOrigins,
			WebhookAPIKey:  specs.WebhookAPIKey,
		},
		web.Services{
			Tenant:     tenantService,
			Invitation: invitationService,
			Onboarding: onboarding.NewService(invitationService, tenantService, tracer, monitor, logger),
			Webhooks:   webhooks.NewService(s, kratosClient, invitationService, tracer, monitor, logger),
		},
		gate,
		verifier,
		dbClient,
		dependencies,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func newAuthorizer(specs *config.EnvSpec, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *authorization.Authorizer {
	if !specs.AuthorizationEnabled {
		logger.Info("Using noop authorizer")
		return authorization.NewAuthorizer(
			openfga.NewNoopClient(tracer, monitor, logger),
			tracer,
			monitor,
			logger,
		)
	}

	ofga := openfga.NewClient(
		openfga.NewConfig(
			specs.OpenfgaApiScheme,
			specs.OpenfgaApiHost,
			specs.OpenfgaStoreId,
			specs.OpenfgaApiToken,
			specs.OpenfgaModelId,
			specs.Debug,
			tracer,
			monitor,
			logger,
		),
	)
	authorizer := authorization.NewAuthorizer(ofga, tracer, monitor, logger)
	logger.Info("Authorization is enabled")

	if authorizer.ValidateModel(context.Background()) != nil {
		panic("Invalid authorization model provided")
	}

	return authorizer
}
