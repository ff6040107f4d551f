// Package api is the typed client for the provisioning portal backend.
//
// It has two layers:
//
//  1. The envelope (Client) - attaches content negotiation, auth and request
//     id headers to every request and turns non-2xx responses into *Error
//     values whose message comes from the JSON "detail" field, the raw body,
//     or "HTTP <status>" in that order of preference.
//
//  2. Resource gateways - one thin CRUD client per backend sub-resource family
//     (session, apps, clusters, namespaces, resources, role bindings, ArgoCD
//     association, egress firewall, IP allocations). Gateways know the exact
//     paths; they do not merge or cache anything.
package api
