package cmd

import (
	"fmt"

	"portalctl/internal/cli"
	"portalctl/internal/route"

	"github.com/spf13/cobra"
)

func newRouteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "route",
		Short: "Decode and encode console locations",
	}
	c.AddCommand(newRouteDecodeCmd(), newRouteEncodeCmd())
	return c
}

func newRouteDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <location>",
		Short: "Decode a location into its route and canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			r := route.DecodeURL(args[0])
			canonical := route.Encode(r)
			out := struct {
				route.Route
				Canonical string `json:"canonical"`
			}{r, canonical}
			return p.Print(out, func() cli.Table {
				return cli.KeyValue(
					[2]string{"env", r.Env},
					[2]string{"view", string(r.View)},
					[2]string{"app", r.AppName},
					[2]string{"namespace", r.Namespace},
					[2]string{"canonical", canonical},
				)
			})
		},
	}
}

func newRouteEncodeCmd() *cobra.Command {
	var r route.Route
	var view string
	c := &cobra.Command{
		Use:   "encode",
		Short: "Encode a route into its canonical location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r.View = route.View(view)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), route.Encode(r))
			return err
		},
	}
	c.Flags().StringVarP(&r.Env, "env", "e", "", "Environment key")
	c.Flags().StringVar(&view, "view", string(route.ViewApps), "apps, namespaces, l4ingress, egressips or namespaceDetails")
	c.Flags().StringVar(&r.AppName, "app", "", "Application name")
	c.Flags().StringVar(&r.Namespace, "ns", "", "Namespace, for namespaceDetails")
	return c
}
