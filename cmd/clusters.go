package cmd

import (
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/cli"
	"portalctl/internal/kube"
	"portalctl/pkg/logging"

	"github.com/spf13/cobra"
)

// clusterRow is a cluster with the local kubeconfig contexts that reach it.
type clusterRow struct {
	api.Cluster
	KubeContexts []string `json:"kube_contexts,omitempty"`
}

func newClustersCmd() *cobra.Command {
	var env string
	c := &cobra.Command{
		Use:   "clusters",
		Short: "List the clusters of an environment",
		Long: `Lists the clusters of an environment. Clusters reachable through a
context of the local kubeconfig are annotated with that context.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateways(cmd)
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			clusters, err := gw.Clusters.List(cmd.Context(), env)
			if err != nil {
				return err
			}

			idx, err := kube.LoadContextIndex()
			if err != nil {
				logging.Debug("CLI", "No local kubeconfig: %v", err)
			}
			rows := annotateClusters(clusters, idx)

			return p.Print(rows, func() cli.Table {
				t := cli.Table{Header: []string{"Cluster", "Purpose", "Datacenter", "Apps", "Kube Context"}}
				for _, r := range rows {
					t.Rows = append(t.Rows, []string{r.Name, r.Purpose, r.Datacenter, strings.Join(r.Applications, ", "), strings.Join(r.KubeContexts, ", ")})
				}
				return t
			})
		},
	}
	c.Flags().StringVarP(&env, "env", "e", "", "Environment key")
	_ = c.MarkFlagRequired("env")
	return c
}

// annotateClusters attaches kube contexts; idx may be nil.
func annotateClusters(clusters []api.Cluster, idx *kube.ContextIndex) []clusterRow {
	rows := make([]clusterRow, 0, len(clusters))
	for _, c := range clusters {
		row := clusterRow{Cluster: c}
		if idx != nil {
			row.KubeContexts = idx.ContextsFor(c.Name)
		}
		rows = append(rows, row)
	}
	return rows
}
