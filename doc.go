// Package cookbook is a set of backend recipes served by one Echo server.
//
// # Overview
//
// Cookbook collects the usual building blocks of a web backend and wires
// them to real stores: document CRUD on MongoDB, a relational blog on
// SQLite or PostgreSQL, JWT authentication, an in-process event emitter
// streamed over WebSocket, chat rooms, a live chart and a GraphQL API.
//
// # Architecture
//
//	┌──────────────────────────┐
//	│   HTTP / WebSocket       │
//	│   (Echo, gorilla/ws)     │
//	└────────────┬─────────────┘
//	             │
//	┌────────────▼─────────────┐      ┌──────────────────┐
//	│   API server             │─────►│  Event emitter   │──► Redis (optional)
//	│   internal/api           │      │  internal/events │
//	└──┬──────────┬─────────┬──┘      └──────────────────┘
//	   │          │         │
//	┌──▼─────┐ ┌──▼─────┐ ┌─▼──────────┐
//	│MongoDB │ │ SQL    │ │ Uploads    │
//	│storage │ │ blog   │ │ directory  │
//	└────────┘ └────────┘ └────────────┘
//
// # Usage
//
// Start the API server:
//
//	cookbook server --config config.yaml
//
// Issue a token, add a user, seed the library:
//
//	cookbook token alice --roles user
//	cookbook user add root --password 's3cret-pass' --roles admin
//	cookbook seed library.yaml
//
// Run a local mongod with its output in the log:
//
//	cookbook mongod --port 27019 --dbpath ./data/db
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (config.yaml, ./configs, $HOME/.cookbook, /etc/cookbook)
//   - Environment variables (CB_ prefix, e.g. CB_MONGO_URI)
//   - .env file
//
// "cookbook config init" writes a file with every default.
//
// # API Endpoints
//
// Items (MongoDB, optional inline file):
//   - GET    /api/v1/items            - List items (skip/limit)
//   - POST   /api/v1/items            - Create item (JSON or multipart)
//   - GET    /api/v1/items/:id        - Get item
//   - PUT    /api/v1/items/:id        - Update item
//   - DELETE /api/v1/items/:id        - Delete item
//   - GET    /api/v1/items/:id/file   - Download the attached file
//
// Tasks (bearer token required):
//   - GET    /api/v1/tasks            - List tasks, filter by title/description/created_by/image
//   - POST   /api/v1/tasks            - Create task (JSON, form or multipart with image)
//   - GET    /api/v1/tasks/:id        - Get task
//   - PUT    /api/v1/tasks/:id        - Update task
//   - DELETE /api/v1/tasks/:id        - Delete task
//
// Auth:
//   - POST /token                     - OAuth2 password form
//   - POST /api/v1/auth/login         - JSON login
//   - GET  /api/v1/auth/me            - Current user
//   - POST /api/v1/auth/register      - Create user (admin)
//   - GET  /api/v1/users              - List users (admin)
//
// Realtime:
//   - GET /api/v1/ws/events           - Every emitted event
//   - GET /api/v1/events/trigger/:data
//   - GET /ws/chat/:room              - Chat relay
//   - GET /ws/plot                    - Chart frames
//   - GET /api/v1/plot.png            - One chart frame
//
// Other:
//   - /api/v1/blog/...                - Users, posts and comments (SQL)
//   - GET|POST /graphql               - Library and school graph
//   - POST /api/v1/lookup/preview     - $lookup pipeline builder
//   - GET  /api/v1/groups/tree        - Groups with users and addresses
//   - POST /api/v1/forms/json|upload  - Request body examples
//   - GET  /health, /docs/*
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Run the MongoDB integration tests:
//
//	CB_TEST_MONGO_URI=mongodb://localhost:27017 go test -tags=integration ./internal/storage/...
//
// Build the binary:
//
//	go build -o cookbook ./cmd/cookbook
package cookbook
