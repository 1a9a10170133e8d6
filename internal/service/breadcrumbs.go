package service

import "net/url"

type Breadcrumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

const rootCrumbLabel = "Sites"

// breadcrumbs builds the trail for a resolved path, root first.
func breadcrumbs(p Path) []Breadcrumb {
	out := []Breadcrumb{{Label: rootCrumbLabel, Href: "/"}}
	if p.Site == nil {
		return out
	}
	href := "/sites/" + url.PathEscape(p.Site.ID)
	out = append(out, Breadcrumb{Label: p.Site.Name, Href: href})
	if p.Department == nil {
		return out
	}
	href += "/" + url.PathEscape(p.Department.ID)
	out = append(out, Breadcrumb{Label: p.Department.Name, Href: href})
	if p.Machine == nil {
		return out
	}
	href += "/" + url.PathEscape(p.Machine.ID)
	return append(out, Breadcrumb{Label: p.Machine.Name, Href: href})
}
