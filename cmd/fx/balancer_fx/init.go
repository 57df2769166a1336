package balancer_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	provideBalancerClient,
	provideEmbeddingClient,
)

func provideBalancerClient() utils.BalancerClientInterface {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}
	apiKey := os.Getenv("AI_API_KEY")
	model := os.Getenv("AI_MODEL")

	if apiKey == "" {
		log.Printf("balancer: AI_API_KEY is empty, every run will use the deterministic draft")
		return nil
	}

	client, err := utils.NewBalancerClient(provider, apiKey, model)
	if err != nil {
		log.Printf("balancer: creating %s client failed: %v, falling back to deterministic drafts", provider, err)
		return nil
	}
	return client
}

func provideEmbeddingClient() utils.EmbeddingClientInterface {
	return utils.NewHashEmbeddingClient()
}
