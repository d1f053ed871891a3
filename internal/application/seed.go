package application

import (
	"context"
	"fmt"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

type SeedResult struct {
	Seeded    bool
	Users     int
	Posts     int
	Templates int
}

type demoUser struct {
	username, email, name, role, timezone string
}

var demoUsers = []demoUser{
	{"sarah.chen", "sarah@company.com", "Sarah Chen", domain.RoleAdmin, "America/New_York"},
	{"mike.rodriguez", "mike@company.com", "Mike Rodriguez", domain.RoleManager, "America/Los_Angeles"},
	{"emma.johnson", "emma@company.com", "Emma Johnson", domain.RoleMember, "Europe/London"},
}

var demoPlatforms = []struct{ name, display string }{
	{"twitter", "Twitter"},
	{"facebook", "Facebook"},
	{"linkedin", "LinkedIn"},
	{"instagram", "Instagram"},
	{"tiktok", "TikTok"},
	{"pinterest", "Pinterest"},
}

// SeedDemoData loads the demo team into an empty store. A store that already
// has users is left alone. Every demo user signs in with password.
func (s *Service) SeedDemoData(ctx context.Context, password string) (SeedResult, error) {
	existing, err := s.store.ListUsers(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	if len(existing) > 0 {
		return SeedResult{}, nil
	}
	hash, err := s.verifier.Hash(password)
	if err != nil {
		return SeedResult{}, fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]domain.User, 0, len(demoUsers))
	for _, du := range demoUsers {
		tz := du.timezone
		u, err := s.store.CreateUser(ctx, domain.NewUser{
			Username:     du.username,
			PasswordHash: hash,
			Email:        du.email,
			Name:         du.name,
			Role:         du.role,
			Timezone:     &tz,
		})
		if err != nil {
			return SeedResult{}, fmt.Errorf("seed user %s: %w", du.username, err)
		}
		users = append(users, u)
	}
	sarah, mike, emma := users[0], users[1], users[2]

	description := "Social media marketing and content creation team"
	team, err := s.store.CreateTeam(ctx, domain.NewTeam{Name: "Marketing Team", Description: &description, OwnerID: &sarah.ID})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed team: %w", err)
	}
	for _, u := range users {
		if _, err := s.store.AddTeamMember(ctx, domain.NewTeamMember{TeamID: team.ID, UserID: u.ID, Role: u.Role}); err != nil {
			return SeedResult{}, fmt.Errorf("seed member %s: %w", u.Username, err)
		}
	}
	for _, p := range demoPlatforms {
		if _, err := s.store.CreateSocialPlatform(ctx, domain.NewSocialPlatform{
			Name:        p.name,
			DisplayName: p.display,
			Icon:        "fab fa-" + p.name,
			IsConnected: true,
			UserID:      sarah.ID,
			Credentials: map[string]any{},
		}); err != nil {
			return SeedResult{}, fmt.Errorf("seed platform %s: %w", p.name, err)
		}
	}

	now := s.nowFn()
	morning, evening := now.Add(2*time.Hour), now.Add(8*time.Hour)
	launchTitle, tipsTitle := "New Product Launch Announcement", "Weekly Tips: Remote Team Management"
	launch, err := s.store.CreatePost(ctx, domain.NewPost{
		Title: &launchTitle,
		Content: map[string]string{
			"en":    "Excited to announce our latest product that will revolutionize remote work! 🚀 #RemoteWork #Innovation",
			"es":    "¡Emocionados de anunciar nuestro último producto que revolucionará el trabajo remoto! 🚀 #TrabajoRemoto #Innovación",
			"pt-BR": "Empolgados em anunciar nosso novo produto que vai revolucionar o trabalho remoto! 🚀 #TrabalhoRemoto #Inovação",
		},
		Platforms:      []string{"twitter", "linkedin"},
		AuthorID:       mike.ID,
		TeamID:         team.ID,
		Status:         domain.PostStatusScheduled,
		ScheduledAt:    &morning,
		ApprovalStatus: domain.ApprovalApproved,
		ApproverID:     &sarah.ID,
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed post: %w", err)
	}
	tips, err := s.store.CreatePost(ctx, domain.NewPost{
		Title: &tipsTitle,
		Content: map[string]string{
			"en":    "This week's tip focuses on maintaining team productivity while working distributed. 💼 #RemoteWork #TeamManagement",
			"fr":    "Le conseil de cette semaine se concentre sur le maintien de la productivité de l'équipe en travaillant de manière distribuée. 💼 #TravailDistance #GestionEquipe",
			"de":    "Der Tipp dieser Woche konzentriert sich darauf, die Teamproduktivität bei verteilter Arbeit aufrechtzuerhalten. 💼 #RemoteArbeit #TeamManagement",
			"pt-BR": "A dica desta semana foca em manter a produtividade da equipe trabalhando de forma distribuída. 💼 #TrabalhoRemoto #GestãoDeEquipe",
		},
		Platforms:      []string{"tiktok", "pinterest"},
		AuthorID:       emma.ID,
		TeamID:         team.ID,
		Status:         domain.PostStatusScheduled,
		ScheduledAt:    &evening,
		ApprovalStatus: domain.ApprovalPending,
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed post: %w", err)
	}

	launchDesc, launchCategory := "Template for announcing new product launches", "product"
	updateDesc, updateCategory := "Template for sharing weekly team progress", "social"
	templates := []domain.NewTemplate{
		{
			Name:        "Product Launch Announcement",
			Description: &launchDesc,
			Content: map[string]string{
				"en":    "🚀 Exciting news! We're launching [PRODUCT_NAME] - a game-changer for [INDUSTRY]. Get ready to revolutionize your workflow! #ProductLaunch #Innovation",
				"es":    "🚀 ¡Noticias emocionantes! Estamos lanzando [PRODUCT_NAME] - un cambio revolucionario para [INDUSTRY]. ¡Prepárate para revolucionar tu flujo de trabajo! #LanzamientoProducto #Innovación",
				"pt-BR": "🚀 Novidades empolgantes! Estamos lançando [PRODUCT_NAME] - uma revolução para [INDUSTRY]. Prepare-se para revolucionar seu fluxo de trabalho! #LançamentoProduto #Inovação",
			},
			Category: &launchCategory,
			AuthorID: sarah.ID,
			TeamID:   team.ID,
			IsPublic: true,
		},
		{
			Name:        "Weekly Team Update",
			Description: &updateDesc,
			Content: map[string]string{
				"en":    "📊 Weekly Update: Our team accomplished [ACHIEVEMENTS] this week. Next week we're focusing on [GOALS]. #TeamWork #Progress",
				"fr":    "📊 Mise à jour hebdomadaire : Notre équipe a accompli [ACHIEVEMENTS] cette semaine. La semaine prochaine, nous nous concentrons sur [GOALS]. #TravailEquipe #Progrès",
				"pt-BR": "📊 Atualização Semanal: Nossa equipe conquistou [ACHIEVEMENTS] esta semana. Na próxima semana vamos focar em [GOALS]. #TrabalhoEmEquipe #Progresso",
			},
			Category: &updateCategory,
			AuthorID: mike.ID,
			TeamID:   team.ID,
		},
	}
	for _, t := range templates {
		if _, err := s.store.CreateTemplate(ctx, t); err != nil {
			return SeedResult{}, fmt.Errorf("seed template %s: %w", t.Name, err)
		}
	}

	activities := []domain.NewActivity{
		{UserID: mike.ID, TeamID: team.ID, Type: "post_published", Description: "Published post to Twitter and LinkedIn",
			Metadata: map[string]any{"postId": launch.ID, "platforms": []string{"twitter", "linkedin"}}},
		{UserID: sarah.ID, TeamID: team.ID, Type: "user_invited", Description: "Invited Emma Johnson to the team",
			Metadata: map[string]any{"invitedUserId": emma.ID}},
		{UserID: emma.ID, TeamID: team.ID, Type: "post_created", Description: "Created new scheduled post",
			Metadata: map[string]any{"postId": tips.ID}},
	}
	for _, a := range activities {
		if _, err := s.store.CreateActivity(ctx, a); err != nil {
			return SeedResult{}, fmt.Errorf("seed activity %s: %w", a.Type, err)
		}
	}

	s.logger.InfoContext(ctx, "demo data seeded",
		"module", "application",
		"layer", "service",
		"operation", "seed_demo_data",
		"outcome", "success",
		"team_id", team.ID,
	)
	return SeedResult{Seeded: true, Users: len(users), Posts: 2, Templates: len(templates)}, nil
}
