package gpt

import (
	"VendorChat/entity"
	"VendorChat/internal/lib/sl"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const toolCheckSchedule = "checkSchedule"

func toolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolCheckSchedule,
				Description: "Look up available time blocks for a specific date",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"date": {
							Type:        jsonschema.String,
							Description: "The date to check schedule availability, YYYY-MM-DD",
						},
					},
					Required: []string{"date"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        entity.ConfirmationTool,
				Description: "Ask the user for confirmation before booking",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"message": {
							Type:        jsonschema.String,
							Description: "The message to ask for confirmation",
						},
					},
					Required: []string{"message"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        entity.BookingTool,
				Description: "Book the appointment after the user confirmed it and text the customer",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"service": {Type: jsonschema.String, Description: "Name of the booked service"},
						"date":    {Type: jsonschema.String, Description: "Appointment date, YYYY-MM-DD"},
						"start":   {Type: jsonschema.String, Description: "Start time, HH:MM 24-hour"},
						"end":     {Type: jsonschema.String, Description: "End time, HH:MM 24-hour"},
					},
					Required: []string{"service", "date", "start", "end"},
				},
			},
		},
	}
}

type checkScheduleArgs struct {
	Date string `json:"date"`
}

// handleCommand runs a server side tool. Failures are reported to the model
// as the tool result so the conversation can go on.
func (a *Assistant) handleCommand(ctx context.Context, turn *entity.ChatTurn, name, args string) string {
	log := a.log.With(
		slog.String("command", name),
		slog.String("args", args),
	)
	log.Debug("handling command")

	if a.tools == nil {
		return "This tool is not available right now."
	}

	switch name {
	case toolCheckSchedule:
		var req checkScheduleArgs
		if err := json.Unmarshal([]byte(args), &req); err != nil {
			log.Warn("unmarshalling arguments", sl.Err(err))
			return fmt.Sprintf("Invalid arguments: %v", err)
		}
		result, err := a.tools.CheckSchedule(ctx, turn.VendorID, req.Date)
		if err != nil {
			log.Warn("checking schedule", sl.Err(err))
			return fmt.Sprintf("Could not check the schedule: %v", err)
		}
		return result
	case entity.BookingTool:
		var req entity.BookingRequest
		if err := json.Unmarshal([]byte(args), &req); err != nil {
			log.Warn("unmarshalling arguments", sl.Err(err))
			return fmt.Sprintf("Invalid arguments: %v", err)
		}
		result, err := a.tools.ConfirmBooking(ctx, turn, req)
		if err != nil {
			log.Warn("confirming booking", sl.Err(err))
			return fmt.Sprintf("The booking was not made: %v", err)
		}
		return result
	default:
		return fmt.Sprintf("Unknown tool %q", name)
	}
}

// toolContent is what the model sees as the tool message.
func toolContent(result string) string {
	data, err := json.Marshal(entity.ToolOutput{Result: result})
	if err != nil {
		return result
	}
	return string(data)
}
