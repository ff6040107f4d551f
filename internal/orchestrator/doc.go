// Package orchestrator applies one logical namespace update across the
// backend sub-resources that make up a namespace.
//
// # Steps
//
// An UpdateRequest is sparse: each sub-payload that is present turns into
// zero or more backend writes, executed in this fixed order:
//
//  1. namespace_info/basic   - when namespace_info.clusters is present
//  2. namespace_info/egress  - when egress_nameid or enable_pod_based_egress_ip is present
//  3. resources/quota        - when resources.requests or resources.quota_limits is present
//  4. resources/limits       - when resources.limits is present
//  5. rolebindings           - when rolebindings.bindings is present, even empty
//  6. nsargocd               - upsert, or delete when need_argo is false; need_argo is required
//  7. egressfirewall         - upsert, or delete when rules is an empty list
//
// A request that produces no step fails with ErrUnsupportedUpdate.
//
// RequestFor and Changed build a sparse request from an edited copy of a
// namespace's full editable form.
//
// # Merging
//
// The result starts as a copy of the previous canonical namespace. Every
// successful step merges the submitted values and then the backend response
// into it; resources are merged per list so untouched lists survive.
//
// # Failure
//
// Steps are fail-fast without rollback. When a step fails, the steps that
// already succeeded stay merged, the merged namespace is committed to the
// Store, and a *PartialUpdateError naming the applied and failed steps is
// returned. Callers must treat any error as "some data may have changed".
package orchestrator
