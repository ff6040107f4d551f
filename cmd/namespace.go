package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"portalctl/internal/api"
	"portalctl/internal/cli"
	"portalctl/internal/orchestrator"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newNamespaceCmd() *cobra.Command {
	var env string
	c := &cobra.Command{
		Use:     "namespace",
		Aliases: []string{"ns"},
		Short:   "Read and update the namespaces of an application",
	}
	c.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment key")
	_ = c.MarkPersistentFlagRequired("env")

	c.AddCommand(&cobra.Command{
		Use:   "list <app>",
		Short: "List the namespaces of an application",
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
			list, err := gw.Namespaces.List(cmd.Context(), env, args[0])
			if err != nil {
				return err
			}
			return p.Print(list, func() cli.Table {
				t := cli.Table{Header: []string{"Namespace", "Clusters", "Egress", "ArgoCD", "Bindings", "Egress Rules"}}
				for _, ns := range list {
					t.Rows = append(t.Rows, []string{ns.Name, strings.Join(ns.Clusters, ", "), ns.EgressNameID,
						yesNo(ns.NeedArgo), strconv.Itoa(len(ns.RoleBindings)), strconv.Itoa(len(ns.EgressFirewallRules))})
				}
				return t
			})
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "get <app> <namespace>",
		Short: "Show the canonical configuration of one namespace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := newGateways(cmd)
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}
			ns, err := gw.Namespaces.Get(cmd.Context(), api.NamespaceRef{Env: env, App: args[0], Name: args[1]})
			if err != nil {
				return err
			}
			return p.Print(ns, func() cli.Table { return namespaceTable(ns) })
		},
	})

	c.AddCommand(newNamespaceUpdateCmd(&env))
	return c
}

func newNamespaceUpdateCmd(env *string) *cobra.Command {
	var file string
	var dryRun bool
	c := &cobra.Command{
		Use:   "update <app> <namespace> -f <request.yaml>",
		Short: "Apply a composite namespace update",
		Long: `Applies one update request to a namespace. The request file (YAML or JSON,
"-" for stdin) may carry any of these sections:

  namespace_info:
    clusters: [c1, c2]
    egress_nameid: pay-egress
    enable_pod_based_egress_ip: true
  resources:
    requests: {cpu: "2", memory: 4Gi}
    quota_limits: {cpu: "4"}
    limits: {memory: 1Gi}
  rolebindings:
    bindings: [{subject: alice, type: User, role: admin}]
  nsargocd:
    need_argo: true
    gitrepourl: https://git.example.com/pay.git
  egressfirewall:
    rules: [{egressType: dnsName, to: api.example.com, ports: [{protocol: TCP, port: 443}]}]

Sections run in that order and stop at the first failure. Sections that
already succeeded stay applied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readUpdateRequest(cmd, file)
			if err != nil {
				return err
			}
			ref := api.NamespaceRef{Env: *env, App: args[0], Name: args[1]}

			if dryRun {
				if err := orchestrator.Validate(ref, req); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), orchestrator.Describe(req))
				return err
			}

			gw, _, err := newGateways(cmd)
			if err != nil {
				return err
			}
			p, err := newPrinter(cmd)
			if err != nil {
				return err
			}

			prev, err := gw.Namespaces.Get(cmd.Context(), ref)
			if err != nil {
				return err
			}
			result, err := orchestrator.New(orchestrator.WritersFrom(gw), nil, nil).Apply(cmd.Context(), ref, prev, req)
			if err != nil {
				var partial *orchestrator.PartialUpdateError
				if errors.As(err, &partial) && partial.Partial() {
					fmt.Fprintf(cmd.ErrOrStderr(), "Applied before the failure: %s\n", strings.Join(partial.Applied, ", "))
				}
				return err
			}
			return p.Print(result, func() cli.Table { return namespaceTable(result) })
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", `Update request file, "-" for stdin`)
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and print the planned steps without writing")
	_ = c.MarkFlagRequired("file")
	return c
}

func readUpdateRequest(cmd *cobra.Command, file string) (orchestrator.UpdateRequest, error) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return orchestrator.UpdateRequest{}, fmt.Errorf("failed to read update request: %w", err)
	}

	var req orchestrator.UpdateRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return orchestrator.UpdateRequest{}, fmt.Errorf("failed to parse update request: %w", err)
	}
	return req, nil
}

func namespaceTable(ns api.Namespace) cli.Table {
	pairs := [][2]string{
		{"name", ns.Name},
		{"clusters", strings.Join(ns.Clusters, ", ")},
		{"egress_nameid", ns.EgressNameID},
		{"pod based egress ip", yesNo(ns.EnablePodBasedEgressIP)},
		{"argocd", yesNo(ns.NeedArgo)},
		{"argocd sync strategy", ns.ArgoCDSyncStrategy},
		{"git repo", ns.GitRepoURL},
		{"requests", resourceList(ns.Resources.Requests)},
		{"quota limits", resourceList(ns.Resources.QuotaLimits)},
		{"limit range", resourceList(ns.Resources.Limits)},
	}
	for _, b := range ns.RoleBindings {
		pairs = append(pairs, [2]string{"rolebinding", fmt.Sprintf("%s %s -> %s", b.Kind, b.Subject, b.Role)})
	}
	for _, r := range ns.EgressFirewallRules {
		ports := make([]string, 0, len(r.Ports))
		for _, p := range r.Ports {
			ports = append(ports, fmt.Sprintf("%s/%d", p.Protocol, p.Port))
		}
		pairs = append(pairs, [2]string{"egress rule", strings.TrimSpace(fmt.Sprintf("%s %s %s", r.EgressType, r.To, strings.Join(ports, ",")))})
	}
	return cli.KeyValue(pairs...)
}

func resourceList(l api.ResourceList) string {
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + l[k]
	}
	return strings.Join(parts, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
