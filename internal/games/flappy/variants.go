package flappy

import "github.com/vovakirdan/tui-flappy/internal/registry"

// variant builds a registry factory for one flavor of the game.
func variant(id, title string, forceNight bool) registry.Factory {
	return func(env registry.Env) (registry.Game, error) {
		g, err := New(env.Config, env.Runtime.Seed, Deps{
			Logger:      env.Logger,
			BestScores:  env.BestScores,
			Leaderboard: env.Leaderboard,
		})
		if err != nil {
			return nil, err
		}
		g.id = id
		g.title = title
		g.forceNight = forceNight
		return g, nil
	}
}

// Register the game variants with the registry
func init() {
	registry.Register("flappy", "Flappy Bird", variant("flappy", "Flappy Bird", false))
	registry.Register("flappy_night", "Flappy Bird (Night)", variant("flappy_night", "Flappy Bird (Night)", true))
}
