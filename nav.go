package masterweb

// NavItem is a single navigation entry as the page chrome sees it.
type NavItem struct {
	Path         string `json:"path"`
	Label        string `json:"label"`
	ExtraPadding bool   `json:"extraPadding"`
	Active       bool   `json:"active,omitempty"`
}

// NavModel is the branding plus menu needed to draw the chrome. It carries no
// view references.
type NavModel struct {
	Logo  Logo      `json:"logo"`
	Items []NavItem `json:"items"`
}

// BuildNavModel projects the site logo and route table into a NavModel.
func BuildNavModel(site SiteConfig, routes *RouteTable) NavModel {
	entries := routes.All()
	items := make([]NavItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, NavItem{
			Path:         e.Path,
			Label:        e.Label,
			ExtraPadding: e.ExtraPadding,
		})
	}
	return NavModel{Logo: site.Logo, Items: items}
}

// WithActive returns a copy of m with the item matching currentPath marked active.
func (m NavModel) WithActive(currentPath string) NavModel {
	current := NormalizePath(currentPath)
	items := make([]NavItem, len(m.Items))
	for i, it := range m.Items {
		it.Active = it.Path == current
		items[i] = it
	}
	return NavModel{Logo: m.Logo, Items: items}
}
