package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jsphweid/eartrainer/exercise"
	"github.com/jsphweid/eartrainer/model"
	"github.com/jsphweid/eartrainer/playback"
	"github.com/jsphweid/eartrainer/state"
	"github.com/spf13/cobra"
)

var exportQuestions int

func init() {
	exportCmd.Flags().IntVarP(&exportQuestions, "questions", "n", 1, "number of questions to export")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <exercise> <file.mid>",
	Short: "Exports questions as a midi file",
	Long:  `Exports questions, cadences included, as a standard midi file and prints their answers`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, log := loadConfig()
		recorder := playback.NewRecorder(c.Exercise.CadencePause)
		st, err := state.New(args[0], exercise.DefaultCatalog(), recorder,
			state.WithSettings(c.ExerciseSettings()),
			state.WithCadencePause(0),
			state.WithTempo(c.Playback.Tempo),
			state.WithLogger(log),
		)
		cobra.CheckErr(err)

		answers, err := export(context.Background(), st, exportQuestions)
		cobra.CheckErr(err)
		for i, a := range answers {
			fmt.Fprintf(cmd.OutOrStdout(), "question %v: %v\n", i+1, a)
		}

		f, err := os.Create(args[1])
		cobra.CheckErr(err)
		defer f.Close()
		cobra.CheckErr(recorder.WriteTo(f, c.Playback.Tempo))
		log.WithField("file", args[1]).Info("exported")
	},
}

// export plays n questions into whatever player st was built with and
// returns the right answers of each
func export(ctx context.Context, st *state.ExerciseState, n int) ([][]model.Answer, error) {
	var res [][]model.Answer
	for i := 0; i < n; i++ {
		if i > 0 {
			st.NextQuestion()
		}
		if err := st.PlayCurrentCadenceAndQuestion(ctx); err != nil {
			return nil, err
		}
		var answers []model.Answer
		for _, s := range st.CurrentQuestion().Segments {
			answers = append(answers, s.RightAnswer)
		}
		res = append(res, answers)
	}
	return res, nil
}
