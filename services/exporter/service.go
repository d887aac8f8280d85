package exporter

import (
	"context"
	"sync"

	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/estafette/teamcity-build-status-exporter/clients/teamcityapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Service runs a single poll cycle: discover build configurations per template,
// fetch their last build, normalize and install one new snapshot
type Service interface {
	PollCycle(ctx context.Context) (err error)
}

// NewService returns a new exporter.Service
func NewService(config *api.APIConfig, teamcityapiClient teamcityapi.Client, store *Store) Service {
	return &service{
		config:            config,
		teamcityapiClient: teamcityapiClient,
		store:             store,
	}
}

type service struct {
	config            *api.APIConfig
	teamcityapiClient teamcityapi.Client
	store             *Store
}

func (s *service) PollCycle(ctx context.Context) (err error) {

	buildTypes, failedTemplates := s.discoverBuildTypes(ctx)

	snapshot := s.collectSamples(ctx, buildTypes)

	// the new snapshot replaces the previous one in full, so configurations that
	// disappeared from discovery or failed their fetch stop being published now
	s.store.Install(snapshot)

	log.Info().
		Int("buildTypes", len(buildTypes)).
		Int("samples", len(snapshot)).
		Int("failedTemplates", failedTemplates).
		Msg("Installed new build status snapshot")

	if failedTemplates > 0 && failedTemplates == len(s.config.TeamCity.TemplateIDs) {
		return errors.New("discovery failed for all configured templates")
	}

	return nil
}

// discoverBuildTypes enumerates build configurations for every configured template in
// parallel; a failing template is logged and contributes zero configurations this cycle
func (s *service) discoverBuildTypes(ctx context.Context) (buildTypes []teamcityapi.BuildType, failedTemplates int) {

	var mutex sync.Mutex
	seen := map[SampleKey]bool{}

	// limit concurrency using a semaphore
	sem := semaphore.NewWeighted(int64(s.config.Poller.FetchConcurrency))
	g, ctx := errgroup.WithContext(ctx)

	for _, templateID := range s.config.TeamCity.TemplateIDs {
		templateID := templateID
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			templateBuildTypes, err := s.teamcityapiClient.GetBuildTypesForTemplate(ctx, templateID)
			if err != nil {
				log.Warn().Err(err).
					Str("templateID", templateID).
					Msg("Failed discovering build configurations for template, skipping it this cycle")

				mutex.Lock()
				failedTemplates++
				mutex.Unlock()
				return nil
			}

			mutex.Lock()
			defer mutex.Unlock()
			for _, buildType := range templateBuildTypes {
				if buildType.Paused {
					// the locator already asks teamcity to exclude paused configurations,
					// but the flag is still honored for servers ignoring locator dimensions
					continue
				}
				key := SampleKey{TemplateID: templateID, BuildTypeID: buildType.ID}
				if seen[key] {
					continue
				}
				seen[key] = true
				buildTypes = append(buildTypes, buildType)
			}

			return nil
		})
	}

	// errors are handled per template, so the group never fails
	_ = g.Wait()

	return
}

// collectSamples fetches the last build for every discovered configuration in parallel
// and normalizes it into a sample; a failing fetch omits only that configuration
func (s *service) collectSamples(ctx context.Context, buildTypes []teamcityapi.BuildType) Snapshot {

	snapshot := make(Snapshot, len(buildTypes))
	var mutex sync.Mutex

	// limit concurrency using a semaphore
	sem := semaphore.NewWeighted(int64(s.config.Poller.FetchConcurrency))
	g, ctx := errgroup.WithContext(ctx)

	for _, buildType := range buildTypes {
		buildType := buildType
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			build, err := s.teamcityapiClient.GetLastBuild(ctx, buildType.ID)
			if err != nil {
				log.Warn().Err(err).
					Str("buildTypeID", buildType.ID).
					Msg("Failed retrieving last build for build configuration, omitting it this cycle")
				return nil
			}

			sample := Sample{
				Key: SampleKey{
					TemplateID:  buildType.TemplateID,
					BuildTypeID: buildType.ID,
				},
				BuildTypeName: buildType.Name,
				BuildURL:      buildType.WebURL,
				Status:        NormalizeBuildStatus(build),
			}

			mutex.Lock()
			snapshot[sample.Key] = sample
			mutex.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return snapshot
}
