package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vsbench/scanpath-eval/internal/cache"
	"github.com/vsbench/scanpath-eval/internal/config"
	"github.com/vsbench/scanpath-eval/internal/multimatch"
	"github.com/vsbench/scanpath-eval/internal/scanpath"
	"github.com/vsbench/scanpath-eval/internal/scoring"
)

const modelMultimatchFile = "multimatch_model_vs_humans_mean_per_image.json"

func newRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "evaluate",
		Short:         "Compare visual search models against human scanpaths",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.DatasetName, "dataset", cfg.DatasetName, "dataset name")
	root.PersistentFlags().StringVar(&cfg.HumanScanpathsDir, "human-scanpaths", cfg.HumanScanpathsDir, "directory with one scanpaths file per subject")
	root.PersistentFlags().StringVar(&cfg.DatasetResultsDir, "results", cfg.DatasetResultsDir, "dataset results directory, one subdirectory per model")

	root.AddCommand(newMultimatchCmd(cfg), newSaliencyCmd(cfg))
	return root
}

func newMultimatchCmd(cfg *config.AppConfig) *cobra.Command {
	var (
		models []string
		plot   bool
	)

	cmd := &cobra.Command{
		Use:   "multimatch",
		Short: "Multimatch of each model against humans, and of humans against each other",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, closeStore, err := baselineStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			evaluator := multimatch.NewEvaluator(cfg.DatasetName, cfg.HumanScanpathsDir, cfg.DatasetResultsDir,
				multimatch.WithStore(store),
				multimatch.WithTimeScale(cfg.TimeScale),
				multimatch.WithDummyDuration(cfg.DummyDuration),
				multimatch.WithMinFixations(cfg.MinFixations),
			)

			humanMeans, err := evaluator.LoadOrComputeHumanBaseline(ctx)
			if err != nil {
				return fmt.Errorf("human baseline: %w", err)
			}

			for _, model := range models {
				modelDir := filepath.Join(cfg.DatasetResultsDir, model)
				modelScanpaths, err := scanpath.LoadModel(modelDir)
				if err != nil {
					log.Error().Err(err).Str("model", model).Msg("skipping model without scanpaths")
					continue
				}

				result, err := evaluator.AddModel(ctx, model, modelScanpaths)
				if err != nil {
					return err
				}
				if err := writeJSON(filepath.Join(modelDir, modelMultimatchFile), result.Results); err != nil {
					return err
				}
			}

			if plot {
				for _, summary := range evaluator.Summary(humanMeans) {
					summary.PlotTerminal(cmd.OutOrStdout(), cfg.DatasetName)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&models, "models", nil, "models to compare, as named in the results directory")
	cmd.Flags().BoolVar(&plot, "plot", true, "print a per-image chart for each model")
	return cmd
}

func newSaliencyCmd(cfg *config.AppConfig) *cobra.Command {
	var models []string

	cmd := &cobra.Command{
		Use:   "saliency",
		Short: "AUC, NSS and information gain of each model's probability maps on human fixations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			evaluator := scoring.NewEvaluator(scoring.SaliencyPipeline())

			for _, model := range models {
				modelDir := filepath.Join(cfg.DatasetResultsDir, model)

				var maps scoring.MapStoreProvider = scoring.SubjectDirs{Root: modelDir}
				if cfg.ProbabilityMapsDir != "" {
					maps = scoring.SharedStore{MapStore: scoring.NewCSVMapStore(filepath.Join(cfg.ProbabilityMapsDir, model))}
				}

				result, err := evaluator.ComputeForModel(cmd.Context(), model, cfg.HumanScanpathsDir, maps)
				if err != nil {
					return err
				}

				path, err := scoring.SaveResult(modelDir, result)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: AUC %.4f, NSS %.4f, IG %.4f (%d maps) -> %s\n",
					model, result.MeanAUC, result.MeanNSS, result.MeanInfoGain, len(result.Scores), path)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&models, "models", nil, "models to score, as named in the results directory")
	return cmd
}

func baselineStore(cfg *config.AppConfig) (cache.BaselineStore, func(), error) {
	if !cfg.UseRedis() {
		return cache.NewFileStore(cfg.DatasetResultsDir), func() {}, nil
	}

	store, err := cache.NewRedisStore(&cfg.RedisEnvConfig, cfg.DatasetName)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis baseline store: %w", err)
	}
	return store, store.Close, nil
}

func writeJSON(path string, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
