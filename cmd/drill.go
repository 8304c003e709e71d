package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jsphweid/eartrainer/exercise"
	"github.com/jsphweid/eartrainer/state"
	"github.com/spf13/cobra"
)

var drillSilent bool

func init() {
	drillCmd.Flags().BoolVar(&drillSilent, "silent", false, "don't connect to a midi output")
	rootCmd.AddCommand(drillCmd)
}

var drillCmd = &cobra.Command{
	Use:   "drill <exercise>",
	Short: "Runs a drill",
	Long: `Runs a drill in the terminal. Type an answer and press enter.
  r  replay the question
  c  replay the cadence and the question
  n  skip to the next question
  q  quit`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, log := loadConfig()
		player, closePlayer, err := openPlayer(c, log, drillSilent)
		cobra.CheckErr(err)
		defer closePlayer()

		st, err := state.New(args[0], exercise.DefaultCatalog(), player,
			state.WithSettings(c.ExerciseSettings()),
			state.WithCadencePause(c.Exercise.CadencePause),
			state.WithTempo(c.Playback.Tempo),
			state.WithLogger(log),
		)
		cobra.CheckErr(err)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cobra.CheckErr(drill(ctx, st, cmd.InOrStdin(), cmd.OutOrStdout()))
	},
}

func printScore(out io.Writer, st *state.ExerciseState) {
	fmt.Fprintf(out, "score: %v/%v (%.0f%%)\n", st.TotalCorrectAnswers(), st.TotalQuestions(), st.Accuracy()*100)
}

func drill(ctx context.Context, st *state.ExerciseState, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "%v\nanswers: %v\n", st.Name(), strings.Join(st.AnswerList().Flat(), " "))
	if err := st.PlayCurrentCadenceAndQuestion(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "segment %v/%v> ", st.CurrentSegmentToAnswer()+1, len(st.CurrentAnswers()))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			printScore(out, st)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		var err error
		switch input {
		case "":
			continue
		case "q":
			printScore(out, st)
			return nil
		case "r":
			err = st.PlayCurrentQuestion(ctx)
		case "c":
			err = st.PlayCurrentCadenceAndQuestion(ctx)
		case "n":
			st.NextQuestion()
			err = st.PlayCurrentCadenceAndQuestion(ctx)
		default:
			var correct bool
			correct, err = st.Answer(input)
			if err != nil {
				break
			}
			if !correct {
				fmt.Fprintln(out, "wrong, try again")
				continue
			}
			fmt.Fprintln(out, "right")
			if st.IsQuestionComplete() {
				printScore(out, st)
				st.NextQuestion()
				err = st.PlayCurrentCadenceAndQuestion(ctx)
			}
		}
		if err != nil {
			return err
		}
	}
}
