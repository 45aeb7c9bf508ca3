// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/openfga/go-sdk/client"
	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/canonical/agency-service/internal/authorization"
	"github.com/canonical/agency-service/internal/logging"
	"github.com/canonical/agency-service/internal/monitoring"
	"github.com/canonical/agency-service/internal/openfga"
	"github.com/canonical/agency-service/internal/tracing"
)

const (
	StoreName = "agency-service"

	storeIDKey = "OPENFGA_STORE_ID"
	modelIDKey = "OPENFGA_AUTHORIZATION_MODEL_ID"
)

type fgaModelResult struct {
	StoreID string `json:"store_id"`
	ModelID string `json:"model_id"`

	createdStore bool
}

var createFgaModelCmd = &cobra.Command{
	Use:   "create-fga-model",
	Short: "Creates the agency openfga model",
	Long:  `Compiles the agency authorization model and writes it to an openfga store, creating the store when none is given`,
	Run: func(cmd *cobra.Command, args []string) {
		apiURL, _ := cmd.Flags().GetString("fga-api-url")
		apiToken, _ := cmd.Flags().GetString("fga-api-token")
		storeID, _ := cmd.Flags().GetString("fga-store-id")
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		configMapResource, _ := cmd.Flags().GetString("store-k8s-configmap-resource")
		kubeconfigPath, _ := cmd.Flags().GetString("kubeconfig")

		if dryRun {
			if err := printModel(cmd); err != nil {
				cmd.PrintErrln(err)
				os.Exit(1)
			}
			return
		}

		if apiURL == "" || apiToken == "" {
			cmd.PrintErrln("--fga-api-url and --fga-api-token are required")
			os.Exit(1)
		}

		result, err := createModel(cmd.Context(), apiURL, apiToken, storeID, verbose)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		if configMapResource != "" {
			if err := storeInConfigMap(cmd.Context(), kubeconfigPath, configMapResource, result); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to update configmap: %w", err))
				os.Exit(1)
			}
			cmd.Printf("ConfigMap %s updated\n", configMapResource)
		}

		if format == "json" {
			if err := json.NewEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to encode output: %v", err))
				os.Exit(1)
			}
			return
		}

		cmd.Printf("Created model: %s\n", result.ModelID)
		if result.createdStore {
			cmd.Printf("Created store: %s\n", result.StoreID)
		}
	},
}

func init() {
	rootCmd.AddCommand(createFgaModelCmd)

	createFgaModelCmd.Flags().String("fga-api-url", "", "The openfga API URL")
	createFgaModelCmd.Flags().String("fga-api-token", "", "The openfga API token")
	createFgaModelCmd.Flags().String("fga-store-id", "", "The openfga store to create the model in, if empty one will be created")
	createFgaModelCmd.Flags().String("format", "text", "Output format (text or json)")
	createFgaModelCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	createFgaModelCmd.Flags().Bool("dry-run", false, "Print the compiled model instead of writing it")
	createFgaModelCmd.Flags().String("store-k8s-configmap-resource", "", "The configmap resource to store the FGA Store ID and Model ID, format: namespace/name")
	createFgaModelCmd.Flags().String("kubeconfig", "", "Path to the kubeconfig file (optional, defaults to in-cluster config)")
}

func printModel(cmd *cobra.Command) error {
	model, err := authorization.NewAuthorizationModelProvider("v0").GetModel()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(model)
}

func createModel(ctx context.Context, apiURL, apiToken, storeID string, verbose bool) (*fgaModelResult, error) {
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("", logger)

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	model, err := authorization.NewAuthorizationModelProvider("v0").GetModel()
	if err != nil {
		return nil, err
	}

	fgaClient := openfga.NewClient(
		&openfga.Config{
			ApiScheme: u.Scheme,
			ApiHost:   u.Host,
			StoreID:   storeID,
			ApiToken:  apiToken,
			Debug:     verbose,
			Tracer:    tracer,
			Monitor:   monitor,
			Logger:    logger,
		},
	)

	result := &fgaModelResult{StoreID: storeID}

	if storeID == "" {
		if result.StoreID, err = fgaClient.CreateStore(ctx, StoreName); err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}
		result.createdStore = true

		if err := fgaClient.SetStoreID(ctx, result.StoreID); err != nil {
			return nil, fmt.Errorf("failed to select store: %w", err)
		}
	}

	result.ModelID, err = fgaClient.WriteModel(
		ctx,
		&client.ClientWriteAuthorizationModelRequest{
			TypeDefinitions: model.TypeDefinitions,
			SchemaVersion:   model.SchemaVersion,
			Conditions:      model.Conditions,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write model: %w", err)
	}

	return result, nil
}

func kubeConfig(path string) (*rest.Config, error) {
	if path != "" {
		return clientcmd.BuildConfigFromFlags("", path)
	}

	if cfg, err := rest.InClusterConfig(); err == nil {
		return cfg, nil
	}

	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
}

func storeInConfigMap(ctx context.Context, kubeconfigPath, resource string, result *fgaModelResult) error {
	namespace, name, ok := strings.Cut(resource, "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("invalid configmap resource format: %s, expected namespace/name", resource)
	}

	cfg, err := kubeConfig(kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	configMaps := clientset.CoreV1().ConfigMaps(namespace)
	data := map[string]string{
		storeIDKey: result.StoreID,
		modelIDKey: result.ModelID,
	}

	cm, err := configMaps.Get(ctx, name, metav1.GetOptions{})
	if k8serrors.IsNotFound(err) {
		cm = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
			Data:       data,
		}
		if _, err := configMaps.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create configmap %s: %w", resource, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get configmap %s: %w", resource, err)
	}

	if cm.Data == nil {
		cm.Data = make(map[string]string, len(data))
	}
	for k, v := range data {
		cm.Data[k] = v
	}

	if _, err := configMaps.Update(ctx, cm, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update configmap %s: %w", resource, err)
	}

	return nil
}
