// Package kube reads the local kubeconfig so portal clusters can be matched
// to contexts the operator can already reach.
package kube

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// GetStartingConfig returns the merged kubeconfig from KUBECONFIG or the default path.
var GetStartingConfig = func() (*api.Config, error) {
	pathOptions := clientcmd.NewDefaultPathOptions()
	if pathOptions == nil {
		return nil, fmt.Errorf("failed to get default kubeconfig path options")
	}
	config, err := pathOptions.GetStartingConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get starting kubeconfig: %w", err)
	}
	return config, nil
}

// GetCurrentKubeContext retrieves the name of the currently active Kubernetes context
func GetCurrentKubeContext() (string, error) {
	config, err := GetStartingConfig()
	if err != nil {
		return "", err
	}
	if config.CurrentContext == "" {
		return "", fmt.Errorf("current kubeconfig context is not set")
	}
	return config.CurrentContext, nil
}

// ContextIndex maps cluster names to the kubeconfig contexts that point at them.
type ContextIndex struct {
	current   string
	byCluster map[string][]string
}

// LoadContextIndex indexes the local kubeconfig.
func LoadContextIndex() (*ContextIndex, error) {
	config, err := GetStartingConfig()
	if err != nil {
		return nil, err
	}
	return NewContextIndex(config), nil
}

// NewContextIndex indexes config. A context is filed under its own name, the name of
// the cluster entry it references and the suffix after a "<prefix>-" login context
// (e.g. "teleport.example.io-dev1" is filed under "dev1").
func NewContextIndex(config *api.Config) *ContextIndex {
	idx := &ContextIndex{byCluster: map[string][]string{}}
	if config == nil {
		return idx
	}
	idx.current = config.CurrentContext

	add := func(key, ctxName string) {
		key = strings.ToLower(key)
		if key == "" {
			return
		}
		for _, existing := range idx.byCluster[key] {
			if existing == ctxName {
				return
			}
		}
		idx.byCluster[key] = append(idx.byCluster[key], ctxName)
	}

	for name, c := range config.Contexts {
		add(name, name)
		if c != nil {
			add(c.Cluster, name)
		}
		if i := strings.LastIndex(name, "-"); i > 0 && strings.Contains(name[:i], ".") {
			add(name[i+1:], name)
		}
	}
	for _, names := range idx.byCluster {
		sort.Strings(names)
	}
	return idx
}

// Current returns the current context name.
func (i *ContextIndex) Current() string {
	return i.current
}

// ContextsFor returns the contexts that reach cluster, sorted.
func (i *ContextIndex) ContextsFor(cluster string) []string {
	return append([]string(nil), i.byCluster[strings.ToLower(cluster)]...)
}

// Has reports whether any context reaches cluster.
func (i *ContextIndex) Has(cluster string) bool {
	return len(i.byCluster[strings.ToLower(cluster)]) > 0
}
