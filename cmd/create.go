package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/yaml"

	"github.com/eznix86/kstack/internal/cluster"
	"github.com/eznix86/kstack/internal/ui"
	"github.com/eznix86/kstack/internal/util"
)

var (
	createNamespace string
	createEnvFile   string
	createLiterals  []string
	createDryRun    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create individual Kubernetes resources",
}

var createSecretCmd = &cobra.Command{
	Use:   "secret NAME",
	Short: "Create a Secret from an env file or literals",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateSecret,
}

var createConfigCmd = &cobra.Command{
	Use:   "config NAME",
	Short: "Create a ConfigMap from an env file or literals",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateConfig,
}

func init() {
	rootCmd.AddCommand(createCmd)
	for _, cmd := range []*cobra.Command{createSecretCmd, createConfigCmd} {
		createCmd.AddCommand(cmd)
		cmd.Flags().StringVarP(&createNamespace, "namespace", "n", "default", "target Kubernetes namespace")
		cmd.Flags().StringVar(&createEnvFile, "from-env-file", "", "load KEY=VALUE pairs from an env file")
		cmd.Flags().StringArrayVar(&createLiterals, "from-literal", nil, "KEY=VALUE pair (repeatable)")
		cmd.Flags().BoolVar(&createDryRun, "dry-run", false, "print the manifest instead of creating it")
	}
}

func collectCreateData() (map[string]string, error) {
	data := make(map[string]string)
	if createEnvFile != "" {
		fromFile, err := util.ParseEnvFile(util.ExpandPath(createEnvFile))
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			data[k] = v
		}
	}
	fromLiterals, err := util.ParseLiterals(createLiterals)
	if err != nil {
		return nil, err
	}
	for k, v := range fromLiterals {
		data[k] = v
	}
	return data, nil
}

func runCreateSecret(cmd *cobra.Command, args []string) error {
	data, err := collectCreateData()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid secret data", err.Error(), ""))
		return err
	}
	byteData := make(map[string][]byte, len(data))
	for k, v := range data {
		byteData[k] = []byte(v)
	}
	secret := &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: args[0], Namespace: createNamespace},
		Data:       byteData,
	}
	gvr := schema.GroupVersionResource{Version: "v1", Resource: "secrets"}
	return createResource(cmd, "Secret", secret, gvr)
}

func runCreateConfig(cmd *cobra.Command, args []string) error {
	data, err := collectCreateData()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid config data", err.Error(), ""))
		return err
	}
	configMap := &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{Name: args[0], Namespace: createNamespace},
		Data:       data,
	}
	gvr := schema.GroupVersionResource{Version: "v1", Resource: "configmaps"}
	return createResource(cmd, "ConfigMap", configMap, gvr)
}

func createResource(cmd *cobra.Command, kind string, obj runtime.Object, gvr schema.GroupVersionResource) error {
	if createDryRun {
		out, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	client, err := cluster.NewFromKubeconfig("")
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Cluster connection failed", err.Error(), ""))
		return err
	}
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return err
	}
	u := &unstructured.Unstructured{Object: content}
	if err := client.Create(cmd.Context(), gvr, createNamespace, u); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to create "+kind, err.Error(), ""))
		return err
	}
	ui.Success(fmt.Sprintf("Created %s %q in namespace %q", kind, u.GetName(), createNamespace))
	return nil
}
