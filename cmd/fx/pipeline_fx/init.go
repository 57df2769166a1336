package pipeline_fx

import (
	"go.uber.org/fx"

	"tripweaver/internal/providers"
	"tripweaver/internal/repositories"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	provideScoringService,
	provideBalanceService,
	provideAddressEnricher,
	provideAssemblyService,
	provideGenerationService,
)

func provideScoringService(matrix providers.DistanceMatrixService) services.ScoringServiceInterface {
	return services.NewScoringService(matrix)
}

func provideBalanceService(client utils.BalancerClientInterface) services.BalanceServiceInterface {
	return services.NewBalanceService(client)
}

func provideAddressEnricher(records repositories.POIRecordRepository, embedder utils.EmbeddingClientInterface) services.AddressEnricherInterface {
	return services.NewCatalogAddressEnricher(records, embedder)
}

func provideAssemblyService(enricher services.AddressEnricherInterface) services.AssemblyServiceInterface {
	return services.NewAssemblyService(enricher)
}

func provideGenerationService(
	fetcher providers.FetcherInterface,
	scoring services.ScoringServiceInterface,
	balance services.BalanceServiceInterface,
	assembly services.AssemblyServiceInterface,
) services.GenerationServiceInterface {
	return services.NewGenerationService(fetcher, scoring, balance, assembly)
}
