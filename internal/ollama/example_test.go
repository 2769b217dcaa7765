// Package ollama provides an HTTP client for the native Ollama API.
//
// # Quick Start
//
//	client, err := ollama.New(ollama.Settings{
//	    BaseURL: "http://localhost:11434",
//	    Model:   "llama3.2",
//	    Timeout: 60 * time.Second,
//	})
//
// # Chat (Synchronous)
//
// Stream defaults to false when left unset.
//
//	resp, err := client.Chat(ctx, ollama.ChatRequest{
//	    Messages: []ollama.Message{
//	        ollama.SystemMessage("You are a helpful assistant."),
//	        ollama.UserMessage("Hello!"),
//	    },
//	    Options: &ollama.Options{Temperature: ollama.Ptr(0.2)},
//	})
//	fmt.Println(resp.Message.Content)
//
// # Chat (Streaming)
//
// ChatStream always sends stream:true. Elements are decoded one at a time as
// Next is called; the last one has Done set.
//
//	stream, err := client.ChatStream(ctx, ollama.ChatRequest{
//	    Messages: []ollama.Message{ollama.UserMessage("Count to 5")},
//	})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for stream.Next() {
//	    fmt.Print(stream.Current().Message.Content)
//	}
//	if err := stream.Err(); err != nil {
//	    return err
//	}
//
// Or with range-over-func, where breaking out closes the connection:
//
//	for chunk, err := range stream.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Message.Content)
//	}
//
// # Embeddings
//
//	emb, err := client.Embed(ctx, ollama.EmbedRequest{
//	    Input: []string{"Hello world"},
//	})
//
// # Model Management
//
//	list, err := client.ListModels(ctx)
//	info, err := client.ShowModel(ctx, "llama3.2")
//	err = client.PullModel(ctx, "llama3.2")
//	err = client.DeleteModel(ctx, "llama3.2")
//	ok := client.IsAvailable(ctx)
//
// # Errors
//
//	_, err := client.ShowModel(ctx, "missing")
//	switch {
//	case ollama.IsNotFound(err):
//	case ollama.IsStatusError(err):
//	case ollama.IsDecodeError(err):
//	case ollama.IsTransportError(err):
//	}
package ollama
