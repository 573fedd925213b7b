package project

import (
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
)

// DemoProjects returns the fixed dataset served when nothing has been stored yet.
// Only ParentID is set on the hierarchy side; Load derives the rest.
func DemoProjects(now time.Time) []Project {
	day := 24 * time.Hour
	ago := func(days int) time.Time { return now.Add(-time.Duration(days) * day) }
	ptr := func(s string) *string { return &s }
	at := func(t time.Time) *time.Time { return &t }

	entry := func(id, description string, ts time.Time) []activity.Entry {
		return []activity.Entry{{
			ID:          id,
			Type:        activity.TypeCreated,
			Description: description,
			UserID:      "demo-user",
			Timestamp:   ts,
		}}
	}

	return []Project{
		{
			ID:             "demo-1",
			Name:           "Assurance Flotte Automobile",
			Description:    "Renouvellement du contrat flotte pour le groupe Martin Transports",
			Type:           TypeInsurance,
			Status:         StatusActive,
			Priority:       PriorityHigh,
			InterlocutorID: ptr("interlocutor-1"),
			Tags: []Tag{
				{ID: "tag-auto", Name: "Automobile", Color: "#2563eb"},
				{ID: "tag-renewal", Name: "Renouvellement", Color: "#16a34a"},
			},
			Members: []Member{
				{UserID: "demo-user", Name: "Claire Dubois", Role: "owner", Permissions: []string{"read", "write", "admin"}, JoinedAt: ago(60)},
				{UserID: "user-2", Name: "Julien Moreau", Role: "editor", Permissions: []string{"read", "write"}, JoinedAt: ago(45)},
			},
			Items: []Item{
				{ID: "item-1", Type: ItemQuote, Title: "Devis flotte 2025", Description: "Comparatif de trois assureurs", Status: ItemCompleted, CreatedBy: "demo-user", CreatedAt: ago(40), UpdatedAt: ago(30)},
				{ID: "item-2", Type: ItemContract, Title: "Contrat cadre flotte", Status: ItemInProgress, CreatedBy: "demo-user", CreatedAt: ago(20), UpdatedAt: ago(5)},
			},
			Files: []File{
				{ID: "file-1", Name: "liste-vehicules.xlsx", MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Size: 48213, URL: "/files/liste-vehicules.xlsx", UploadedBy: "demo-user", UploadedAt: ago(38)},
			},
			Activities:   entry("act-1", `Project "Assurance Flotte Automobile" created`, ago(60)),
			StartDate:    at(ago(60)),
			CreatedBy:    "demo-user",
			CreatedAt:    ago(60),
			UpdatedAt:    ago(5),
			LastActivity: ago(5),
		},
		{
			ID:          "demo-2",
			Name:        "Sinistre véhicule AB-123-CD",
			Description: "Déclaration et suivi du sinistre du 12 mars",
			Type:        TypeInsurance,
			Status:      StatusActive,
			Priority:    PriorityUrgent,
			ParentID:    ptr("demo-1"),
			Items: []Item{
				{ID: "item-3", Type: ItemClaim, Title: "Déclaration de sinistre", Status: ItemCompleted, CreatedBy: "user-2", CreatedAt: ago(12), UpdatedAt: ago(10)},
				{ID: "item-4", Type: ItemTask, Title: "Relancer l'expert", Status: ItemPending, CreatedBy: "user-2", CreatedAt: ago(3), UpdatedAt: ago(3)},
			},
			Files: []File{
				{ID: "file-2", Name: "constat.pdf", MimeType: "application/pdf", Size: 734003, URL: "/files/constat.pdf", UploadedBy: "user-2", UploadedAt: ago(12)},
				{ID: "file-3", Name: "photos.zip", MimeType: "application/zip", Size: 5242880, URL: "/files/photos.zip", UploadedBy: "user-2", UploadedAt: ago(11)},
			},
			Activities:   entry("act-2", `Project "Sinistre véhicule AB-123-CD" created`, ago(12)),
			CreatedBy:    "user-2",
			CreatedAt:    ago(12),
			UpdatedAt:    ago(3),
			LastActivity: ago(3),
		},
		{
			ID:          "demo-3",
			Name:        "Audit conformité RGPD",
			Description: "Revue annuelle des traitements de données clients",
			Type:        TypeLegal,
			Status:      StatusCompleted,
			Priority:    PriorityMedium,
			Tags: []Tag{
				{ID: "tag-compliance", Name: "Conformité", Color: "#9333ea"},
			},
			Items: []Item{
				{ID: "item-5", Type: ItemDocument, Title: "Registre des traitements", Status: ItemCompleted, CreatedBy: "demo-user", CreatedAt: ago(90), UpdatedAt: ago(50)},
			},
			Activities:   entry("act-3", `Project "Audit conformité RGPD" created`, ago(90)),
			StartDate:    at(ago(90)),
			EndDate:      at(ago(48)),
			CreatedBy:    "demo-user",
			CreatedAt:    ago(90),
			UpdatedAt:    ago(48),
			LastActivity: ago(48),
		},
		{
			ID:           "demo-4",
			Name:         "Placement trésorerie",
			Description:  "Optimisation des placements court terme",
			Type:         TypeFinance,
			Status:       StatusDraft,
			Priority:     PriorityLow,
			Activities:   entry("act-4", `Project "Placement trésorerie" created`, ago(2)),
			CreatedBy:    "demo-user",
			CreatedAt:    ago(2),
			UpdatedAt:    ago(2),
			LastActivity: ago(2),
		},
		{
			ID:          "demo-5",
			Name:        "Avenant garanties",
			Description: "Extension des garanties bris de glace",
			Type:        TypeCommercial,
			Status:      StatusOnHold,
			Priority:    PriorityMedium,
			ParentID:    ptr("demo-1"),
			Items: []Item{
				{ID: "item-6", Type: ItemNote, Title: "En attente du retour client", Status: ItemPending, CreatedBy: "demo-user", CreatedAt: ago(7), UpdatedAt: ago(7)},
			},
			Activities:   entry("act-5", `Project "Avenant garanties" created`, ago(8)),
			CreatedBy:    "demo-user",
			CreatedAt:    ago(8),
			UpdatedAt:    ago(7),
			LastActivity: ago(7),
		},
		{
			ID:           "demo-6",
			Name:         "Expertise carrosserie",
			Description:  "Rapport d'expertise du garage partenaire",
			Type:         TypeTechnical,
			Status:       StatusDraft,
			Priority:     PriorityHigh,
			ParentID:     ptr("demo-2"),
			Activities:   entry("act-6", `Project "Expertise carrosserie" created`, ago(1)),
			CreatedBy:    "user-2",
			CreatedAt:    ago(1),
			UpdatedAt:    ago(1),
			LastActivity: ago(1),
		},
	}
}
