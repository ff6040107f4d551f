package cmd

import (
	"strconv"
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/cli"

	"github.com/spf13/cobra"
)

func newAppsCmd() *cobra.Command {
	var env string
	c := &cobra.Command{
		Use:   "apps",
		Short: "Read applications and their IP allocations",
	}
	c.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment key")
	_ = c.MarkPersistentFlagRequired("env")

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the applications of an environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateways(cmd)
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			apps, err := gw.Apps.List(cmd.Context(), env)
			if err != nil {
				return err
			}
			return p.Print(apps, func() cli.Table { return appsTable(apps) })
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "ingress <app>",
		Short: "List the layer-4 ingress IP allocations of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateways(cmd)
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			items, err := gw.Apps.L4Ingress(cmd.Context(), env, args[0])
			if err != nil {
				return err
			}
			return p.Print(items, func() cli.Table {
				t := cli.Table{Header: []string{"Cluster", "Namespace", "Name", "Purpose", "IPs"}}
				for _, a := range items {
					t.Rows = append(t.Rows, []string{a.Cluster, a.Namespace, a.Name, a.Purpose, strings.Join(a.IPs, ", ")})
				}
				return t
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "egress <app>",
		Short: "List the egress IP allocations of an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateways(cmd)
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			items, err := gw.Apps.EgressIPs(cmd.Context(), env, args[0])
			if err != nil {
				return err
			}
			return p.Print(items, func() cli.Table {
				t := cli.Table{Header: []string{"Cluster", "Egress Name", "Namespaces", "IPs"}}
				for _, a := range items {
					t.Rows = append(t.Rows, []string{a.Cluster, a.EgressNameID, strings.Join(a.Namespaces, ", "), strings.Join(a.IPs, ", ")})
				}
				return t
			})
		},
	})
	return c
}

func appsTable(apps []api.App) cli.Table {
	t := cli.Table{Header: []string{"App", "Namespaces", "Clusters", "Managed By"}}
	for _, a := range apps {
		t.Rows = append(t.Rows, []string{a.Name, strconv.Itoa(a.TotalNamespaces), strings.Join(a.Clusters, ", "), a.ManagedBy})
	}
	return t
}
