package cmd

import (
	"github.com/capnow/portfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	db := predict.Files("*.db")
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"raw": predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"dashboard": {Flags: map[string]complete.Predictor{
				"s":    predict.Files("*.json"),
				"json": predict.Nothing,
			}},
			"progress": {Flags: map[string]complete.Predictor{
				"source":      predict.Files("*.json"),
				"set-current": predict.Something,
				"set-target":  predict.Something,
				"o":           predict.Files("*.json"),
			}},
			"lead": {Flags: map[string]complete.Predictor{
				"name":   predict.Something,
				"email":  predict.Something,
				"amount": predict.Something,
				"source": predict.Something,
				"db":     db,
			}},
			"leads": {Flags: map[string]complete.Predictor{
				"db": db,
				"n":  predict.Something,
			}},
			"serve": {Flags: map[string]complete.Predictor{
				"port": predict.Something,
			}},
			"topic": {Args: predict.Set(topicNames())},
		},
	}
}

func topicNames() []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "readme", "*")
}
