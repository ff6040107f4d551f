package api

import "net/url"

const apiPrefix = "/api/v1"

func envQuery(env string) url.Values {
	return url.Values{"env": []string{env}}
}

func appPath(app string) string {
	return apiPrefix + "/apps/" + url.PathEscape(app)
}

func namespacePath(ref NamespaceRef, suffix string) string {
	return appPath(ref.App) + "/namespaces/" + url.PathEscape(ref.Name) + suffix
}
