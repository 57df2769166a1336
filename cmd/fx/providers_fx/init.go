package providers_fx

import (
	"go.uber.org/fx"

	"tripweaver/internal/providers"
)

var Module = fx.Provide(
	provideMatrixClient,
	provideFetcher,
)

func provideMatrixClient() providers.DistanceMatrixService {
	return providers.NewMapboxMatrixClient(providers.NewInMemoryPairCache())
}

func provideFetcher() providers.FetcherInterface {
	return providers.NewFetcher(
		providers.NewLodgingAdapter(),
		providers.NewActivitiesAdapter(),
		providers.NewDiningAdapter(),
		providers.NewTransportAdapter(),
	)
}
