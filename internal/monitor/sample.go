package monitor

import "time"

// SampleAthletes returns a small deterministic demo snapshot used when no
// collector snapshot is configured. Every figure is a constant so demo runs
// are reproducible.
func SampleAthletes() []Athlete {
	day := func(d int) time.Time {
		return time.Date(2025, 8, d, 12, 0, 0, 0, time.UTC)
	}

	return []Athlete{
		{
			Name:           "Gabriel Toledo",
			Nickname:       "FalleN",
			Game:           "Counter-Strike",
			Team:           "Imperial",
			PlayingCountry: "BR",
			Platforms: map[Platform]*PlatformData{
				PlatformYouTube: {
					Followers: 1_200_000,
					Items: []ContentItem{
						{
							Platform:    PlatformYouTube,
							ID:          "yt-fallen-1",
							Title:       "Jogando ranked com a galera",
							Description: "Treino do dia e analise das partidas",
							PublishedAt: day(1),
						},
						{
							Platform:    PlatformYouTube,
							ID:          "yt-fallen-2",
							Title:       "Nova skin AWP - abrindo caixas ao vivo",
							Description: "Case opening com a nova operacao, use o código FALLEN10",
							PublishedAt: day(3),
						},
						{
							Platform:    PlatformYouTube,
							ID:          "yt-fallen-3",
							Title:       "Highlights do campeonato",
							Description: "Melhores jogadas da semana",
							PublishedAt: day(5),
						},
					},
				},
				PlatformTwitch: {
					Followers: 800_000,
					Items: []ContentItem{
						{
							Platform:    PlatformTwitch,
							ID:          "tw-fallen-1",
							Title:       "LIVE bet365 apresenta: treino aberto",
							Description: "Partidas de treino patrocinadas, odds ao vivo",
							PublishedAt: day(2),
						},
					},
				},
			},
		},
		{
			Name:           "Erick Santos",
			Nickname:       "aspas",
			Game:           "Valorant",
			Team:           "Leviatan",
			PlayingCountry: "CL",
			Platforms: map[Platform]*PlatformData{
				PlatformTwitter: {
					Followers: 650_000,
					Items: []ContentItem{
						{
							Platform:    PlatformTwitter,
							ID:          "tt-aspas-1",
							Title:       "jogo do tigrinho pagou demais hoje",
							Description: "fortune tiger na blaze, apenas hoje bônus dobrado",
							PublishedAt: day(4),
						},
						{
							Platform:    PlatformTwitter,
							ID:          "tt-aspas-2",
							Title:       "#publi parceria nova com a KTO",
							Description: "patrocinador oficial da stream, jogue com responsabilidade",
							PublishedAt: day(6),
						},
					},
				},
			},
		},
		{
			Name:           "Kaike Cerato",
			Nickname:       "KSCERATO",
			Game:           "Counter-Strike",
			Team:           "FURIA",
			PlayingCountry: "US",
			Platforms: map[Platform]*PlatformData{
				PlatformYouTube: {
					Followers: 300_000,
					Items: []ContentItem{
						{
							Platform:    PlatformYouTube,
							ID:          "yt-kscerato-1",
							Title:       "Vlog da bootcamp",
							Description: "Rotina de treinos nos Estados Unidos",
							PublishedAt: day(7),
						},
					},
				},
			},
		},
	}
}
