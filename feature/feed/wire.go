package feed

import (
	"strings"

	"record-sync/core/reconcile"
	"record-sync/core/utils"
)

// wirePage is one change feed response.
type wirePage struct {
	Count           any              `json:"count"`
	Items           []map[string]any `json:"items"`
	NextPageToken   string           `json:"nextPageToken"`
	ResumptionToken string           `json:"resumptionToken"`
	MoreChanges     *bool            `json:"moreChanges"`
	NavigationLinks []navigationLink `json:"navigationLinks"`
}

type navigationLink struct {
	Ref  string `json:"ref"`
	Href string `json:"href"`
}

// toPage converts the response into the reconciler's page model.
func (w wirePage) toPage() reconcile.Page {
	page := reconcile.Page{
		TotalCount: utils.ToInt(w.Count),
		Events:     make([]reconcile.ChangeEvent, 0, len(w.Items)),
		NextCursor: w.cursor(),
	}
	for _, item := range w.Items {
		page.Events = append(page.Events, toEvent(item))
	}
	return page
}

func (w wirePage) cursor() string {
	if w.MoreChanges != nil && !*w.MoreChanges {
		return ""
	}
	if token := strings.TrimSpace(w.NextPageToken); token != "" {
		return token
	}
	if token := strings.TrimSpace(w.ResumptionToken); token != "" {
		return token
	}
	for _, link := range w.NavigationLinks {
		if strings.Contains(link.Ref, "next") {
			return lastSegment(link.Href)
		}
	}
	return ""
}

func toEvent(item map[string]any) reconcile.ChangeEvent {
	return reconcile.ChangeEvent{
		SourceID:   utils.FirstString(item, "sourceId", "uuid"),
		ChangeType: reconcile.ChangeType(utils.FirstString(item, "changeType")),
		RecordKind: utils.FirstString(item, "recordKind", "familySystemName"),
	}
}

// lastSegment returns the final path segment of href, ignoring any query string.
func lastSegment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
