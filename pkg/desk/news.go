package desk

import "github.com/aretw0/atcdesk/pkg/core"

// News shows the embedded news panel.
type News struct {
	item    core.NewsItem
	surface core.NewsSurface
}

// Item returns the configured panel.
func (n *News) Item() core.NewsItem { return n.item }

// Render pushes the panel to the surface.
func (n *News) Render() {
	n.surface.RenderNews(n.item)
}
