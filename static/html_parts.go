package static

// Demo page chrome. The server writes Part1, the property form and the
// preview, Part2, the buffered logs and finally Part3.
var (
	Part1 = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Voronoi paint</title>
		<style>
			body {
				background-color: #1F1F1F;
				color: #d3d3d3;
				font-family: Consolas, monospace;
				overflow: hidden;
			}

			#container {
				display: flex;
				width: 100%;
				height: 100vh;
				box-sizing: border-box;
			}

			#left-container {
				width: 60%;
				padding: 10px;
				box-sizing: border-box;
				overflow-y: auto;
			}

			#right-container {
				width: 40%;
				padding: 10px;
				box-sizing: border-box;
				border-left: 5px solid #757575;
				overflow-y: auto;
				overflow-x: auto;
				background-color: #1e1e1e;
			}

			#logs {
				white-space: pre-wrap;
				word-wrap: break-word;
				color: #d3d3d3;
				font-family: Consolas, monospace;
			}

			#canvas {
				display: block;
				margin-top: 10px;
				border: 1px solid #444;
				cursor: crosshair;
			}

			input[type="text"],
			input[type="number"],
			input[type="submit"] {
				background-color: #2b2b2b;
				color: #d3d3d3;
				border: 1px solid #444;
				padding: 5px;
				margin: 3px 0;
				border-radius: 4px;
			}

			label {
				display: inline-block;
				min-width: 320px;
				color: #d3d3d3;
			}

			a, h1 {
				color: #d3d3d3;
			}

			input[type="submit"]:hover {
				background-color: #444;
				cursor: pointer;
			}

			::-webkit-scrollbar {
				width: 8px;
			}

			::-webkit-scrollbar-thumb {
				background-color: #444;
				border-radius: 10px;
			}

			::-webkit-scrollbar-track {
				background-color: #2b2b2b;
			}
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <h1>Voronoi paint</h1>
    `

	Part2 = `
            </div>
            <div id="right-container">
                <h1>Logs</h1>
                <div id="logs">`

	Part3 = `
                </div>
            </div>
        </div>

        <script>
            const form = document.getElementById('diagram-form');
            const canvas = document.getElementById('canvas');
            const element = canvas.dataset.element;
            let pointer = null;

            function query() {
                const params = new URLSearchParams(new FormData(form));
                params.set('width', canvas.width);
                params.set('height', canvas.height);
                if (pointer) {
                    params.set('mouseX', pointer.x);
                    params.set('mouseY', pointer.y);
                }
                return params.toString();
            }

            function refreshLogs() {
                fetch('/logs?clear=1')
                    .then(response => response.text())
                    .then(html => { document.getElementById('logs').innerHTML = html; })
                    .catch(error => console.error('logs:', error));
            }

            function repaint() {
                const q = query();
                canvas.src = '/paint/' + element + '.png?' + q;
                document.getElementById('chart-link').href = '/chart/' + element + '?' + q;
                refreshLogs();
            }

            form.addEventListener('submit', function (e) {
                e.preventDefault();
                repaint();
            });

            canvas.addEventListener('mousemove', function (e) {
                const rect = canvas.getBoundingClientRect();
                pointer = { x: Math.round(e.clientX - rect.left), y: Math.round(e.clientY - rect.top) };
                repaint();
            });

            canvas.addEventListener('mouseleave', function () {
                pointer = null;
                repaint();
            });
        </script>
    </body>
    </html>
    `
)
